// Package fsx writes output files atomically: content goes to a temp file in
// the target directory and is renamed over the destination, so a re-run
// replaces files wholesale and an interrupted write never leaves a partial one.
package fsx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// renameFunc is swapped in tests to simulate rename failures.
var renameFunc = os.Rename

// PathTypeConflictError means the destination exists but is not a regular file.
type PathTypeConflictError struct {
	Path string
	Got  string
}

func (e *PathTypeConflictError) Error() string {
	return fmt.Sprintf("path %q exists as %s, want regular file", e.Path, e.Got)
}

// IsPathTypeConflict reports whether err is a *PathTypeConflictError.
func IsPathTypeConflict(err error) bool {
	var e *PathTypeConflictError
	return errors.As(err, &e)
}

// EnsureDirs creates every directory (and parents). Existing ones are fine.
func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", d, err)
		}
	}
	return nil
}

// WriteFile atomically writes data to path, replacing any existing file.
func WriteFile(path string, data []byte) error {
	return WriteWith(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteFrom atomically streams r to path and returns the byte count.
func WriteFrom(path string, r io.Reader) (int64, error) {
	var n int64
	err := WriteWith(path, func(w io.Writer) error {
		var err error
		n, err = io.Copy(w, r)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// WriteWith atomically writes whatever fill produces to path. If fill fails
// the destination is left untouched.
func WriteWith(path string, fill func(w io.Writer) error) error {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}

	if fi, err := os.Lstat(path); err == nil && !fi.Mode().IsRegular() {
		got := "dir"
		if !fi.IsDir() {
			got = fi.Mode().Type().String()
		}
		return &PathTypeConflictError{Path: path, Got: got}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Temp name starts with '.' so half-written files stay out of listings.
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	bw := bufio.NewWriterSize(tmp, 64<<10)
	if err := fill(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := renameFunc(tmpName, path); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmpName, path, err)
	}

	_ = syncDirBestEffort(dir)
	return nil
}

// IsEmptyDir reports whether dir has no visible entries. Dot-files (including
// in-flight temp files) are ignored.
func IsEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			return false, nil
		}
	}
	return true, nil
}

func syncDirBestEffort(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
