// Package walk enumerates files below a directory by predicate.
package walk

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Filter decides on a single entry found during the walk.
type Filter func(path string, entry fs.DirEntry) bool

const hiddenMarker = "."

// Find walks root recursively and returns the paths of all entries accepted by match, in lexical walk order.
// Directories accepted by skip are not descended into, the root itself is always entered.
// The first error encountered aborts the walk.
func Find(root string, skip Filter, match Filter) (paths []string, err error) {
	visitor := func(path string, entry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if entry.IsDir() {
			if path != root && skip != nil && skip(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}
		if match(path, entry) {
			paths = append(paths, path)
		}
		return nil
	}
	err = filepath.WalkDir(root, visitor)
	if err != nil {
		paths = nil
	}
	return
}

// HiddenDir accepts directories whose name begins with a dot.
func HiddenDir(path string, entry fs.DirEntry) bool {
	return entry.IsDir() && strings.HasPrefix(entry.Name(), hiddenMarker)
}

// NamedFile accepts regular files with exactly the given name.
func NamedFile(name string) Filter {
	return func(path string, entry fs.DirEntry) bool {
		return entry.Type().IsRegular() && entry.Name() == name
	}
}

// FileWithAffixes accepts regular files whose name starts with prefix and ends with suffix.
func FileWithAffixes(prefix string, suffix string) Filter {
	return func(path string, entry fs.DirEntry) bool {
		name := entry.Name()
		return entry.Type().IsRegular() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix)
	}
}
