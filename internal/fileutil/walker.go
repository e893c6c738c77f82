package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WalkOptions configures the directory walk.
type WalkOptions struct {
	// ExcludeDirs is a list of directory names to skip entirely
	// (e.g. ".git", "node_modules"). Empty means walk everything.
	ExcludeDirs []string
}

// WalkFiles calls fn for every regular file under root, depth-first, in the
// order the OS lists directory entries (no sorting). Individual entries that
// fail to stat or list are skipped. An error accessing the root itself
// aborts the walk; the caller still receives every file visited before the
// failure through fn.
func WalkFiles(root string, opts WalkOptions, fn func(path string)) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				// Cannot enumerate the root at all
				return fmt.Errorf("error accessing %s: %w", path, err)
			}
			// Unreadable entry, keep walking
			return nil
		}

		if d.IsDir() {
			if path != root && excludeMap[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks, devices and other irregular entries are not scanned
		if !d.Type().IsRegular() {
			return nil
		}

		fn(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	return nil
}

// CollectFiles walks root and returns the visited file paths as a slice.
// On a walk error the slice holds the partial results.
func CollectFiles(root string, opts WalkOptions) ([]string, error) {
	files := make([]string, 0)
	err := WalkFiles(root, opts, func(path string) {
		files = append(files, path)
	})
	return files, err
}
