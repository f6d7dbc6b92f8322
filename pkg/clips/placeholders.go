package clips

import (
	"fmt"
	"path/filepath"

	"github.com/netfix-app/trailerkit/internal/infra/fsx"
)

// PlaceholderNames returns the two file names written into an empty category.
func PlaceholderNames(category string) [2]string {
	return [2]string{category + "_sample1.txt", category + "_sample2.txt"}
}

func placeholderText(category string) [2]string {
	return [2]string{
		fmt.Sprintf("This is a placeholder for a %s video clip", category),
		fmt.Sprintf("This is another placeholder for a %s video clip", category),
	}
}

// EnsurePlaceholders writes exactly two placeholder files into every category
// folder that is empty, creating the folder first if needed. Folders holding
// anything are left untouched. Unsafe category names are logged and skipped.
// It returns the paths written.
func (d *Downloader) EnsurePlaceholders(categories []string) ([]string, error) {
	var written []string
	for _, c := range d.usableCategories(categories) {
		dir := d.CategoryDir(c)
		if err := fsx.EnsureDirs(dir); err != nil {
			return written, err
		}
		empty, err := fsx.IsEmptyDir(dir)
		if err != nil {
			return written, err
		}
		if !empty {
			continue
		}

		d.log.Info("creating placeholder files", map[string]interface{}{"category": c})
		names, texts := PlaceholderNames(c), placeholderText(c)
		for i := range names {
			path := filepath.Join(dir, names[i])
			if err := fsx.WriteFile(path, []byte(texts[i])); err != nil {
				return written, err
			}
			written = append(written, path)
			d.metrics.PlaceholdersWritten.WithLabelValues(c).Inc()
		}
	}
	return written, nil
}
