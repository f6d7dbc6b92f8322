// validator.go - Sanity checks on a catalog. Returns warnings, never errors.
package catalog

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate reports suspicious entries. Generation still runs with them.
func (c *Catalog) Validate() []string {
	var warnings []string

	for i, m := range c.Movies {
		if strings.TrimSpace(m.Title) == "" {
			warnings = append(warnings, fmt.Sprintf("movie #%d has an empty title", i+1))
		}
		if m.Rating < 0 || m.Rating > 5 {
			warnings = append(warnings, fmt.Sprintf("movie %q rating %.1f outside 0–5", m.Title, m.Rating))
		}
	}

	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			warnings = append(warnings, fmt.Sprintf("category #%d has an empty name", i+1))
		}
	}

	seen := make(map[string]struct{}, len(c.Clips))
	for _, s := range c.Clips {
		key := s.Category + "/" + s.Name
		if _, ok := seen[key]; ok {
			warnings = append(warnings, fmt.Sprintf("clip %q listed twice; later download overwrites earlier", key))
		}
		seen[key] = struct{}{}

		if s.Name != filepath.Base(s.Name) || s.Category != filepath.Base(s.Category) {
			warnings = append(warnings, fmt.Sprintf("clip %q must be a plain file name in a plain directory", key))
		}
		if u, err := url.Parse(s.URL); err != nil || u.Scheme == "" || u.Host == "" {
			warnings = append(warnings, fmt.Sprintf("clip %q has an invalid url %q", key, s.URL))
		}
	}

	return warnings
}
