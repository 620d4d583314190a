package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File represents a discovered dataset document
type File struct {
	Path     string
	RelPath  string
	Size     int64
	Contents []byte
}

// FileDiscovery finds dataset documents below a root directory
type FileDiscovery struct {
	rootPath string
}

// NewFileDiscovery creates a new FileDiscovery instance
func NewFileDiscovery(rootPath string) *FileDiscovery {
	return &FileDiscovery{rootPath: rootPath}
}

// DiscoverFiles returns the regular files matching any of the doublestar
// patterns, relative to the root. Each file is reported once, ordered by
// relative path.
func (fd *FileDiscovery) DiscoverFiles(patterns []string) ([]File, error) {
	fsys := os.DirFS(fd.rootPath)
	seen := make(map[string]bool)
	var files []File

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			f, ok := fd.processMatch(match)
			if !ok {
				continue
			}
			seen[match] = true
			files = append(files, f)
		}
	}

	slices.SortFunc(files, func(a, b File) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return files, nil
}

// processMatch reads a glob match, skipping directories and unreadable files
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	fullPath := filepath.Join(fd.rootPath, filepath.FromSlash(match))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return File{}, false
	}

	contents, err := os.ReadFile(fullPath)
	if err != nil {
		return File{}, false
	}

	return File{
		Path:     fullPath,
		RelPath:  match,
		Size:     info.Size(),
		Contents: contents,
	}, true
}

// MatchesAny reports whether relPath matches one of the patterns
func MatchesAny(patterns []string, relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// ReadFile validates and reads a single document named on the command line.
func ReadFile(path string) (File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return File{}, fmt.Errorf("permission denied: %s", absPath)
		}
		return File{}, fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.IsDir() {
		return File{}, fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	if info.Size() == 0 {
		return File{}, fmt.Errorf("file is empty: %s", absPath)
	}

	contents, err := os.ReadFile(absPath)
	if err != nil {
		return File{}, fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}

	return File{
		Path:     absPath,
		RelPath:  path,
		Size:     info.Size(),
		Contents: contents,
	}, nil
}
