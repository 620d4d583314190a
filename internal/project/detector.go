package project

import (
	"os"
	"path/filepath"

	"github.com/dotcommander/compfinder/internal/dataset"
)

// DefaultDataFile is the dataset name looked for when detecting a workspace
const DefaultDataFile = "best_levels_2_5.json"

var configMarkers = []string{".compfinderrc.json", ".compfinderrc.yaml", ".compfinderrc.yml"}

// Info describes a detected compfinder workspace.
// Named 'Info' instead of 'WorkspaceInfo' to avoid stuttering.
type Info struct {
	Root       string
	ConfigFile string // first config file found, relative to Root
	HasData    bool   // DefaultDataFile is present
	HasDataDir bool   // a data/ directory is present
}

// FindRoot climbs up from startPath to the first directory that looks like a
// workspace. When none is found the absolute startPath is returned.
func FindRoot(startPath string) (string, error) {
	if startPath == "" {
		startPath = "."
	}
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	currentDir := absPath
	for {
		if isWorkspaceRoot(currentDir) {
			return currentDir, nil
		}
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}
	return absPath, nil
}

// isWorkspaceRoot reports whether path holds a config file, the default
// dataset or a data directory
func isWorkspaceRoot(path string) bool {
	info := Detect(path)
	return info.ConfigFile != "" || info.HasData || info.HasDataDir
}

// Detect reports the workspace markers present in rootPath.
func Detect(rootPath string) *Info {
	info := &Info{Root: rootPath}

	for _, name := range configMarkers {
		if fileExists(filepath.Join(rootPath, name)) {
			info.ConfigFile = name
			break
		}
	}
	info.HasData = fileExists(filepath.Join(rootPath, DefaultDataFile))

	if st, err := os.Stat(filepath.Join(rootPath, "data")); err == nil && st.IsDir() {
		info.HasDataDir = true
	}
	return info
}

// ResolvePath returns path unchanged when it is absolute, remote or present
// relative to the working directory. Otherwise a copy under root is preferred
// when one exists. Used for the dataset and the owned-units file.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) || dataset.IsRemote(path) || fileExists(path) {
		return path
	}
	if candidate := filepath.Join(root, path); fileExists(candidate) {
		return candidate
	}
	return path
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
