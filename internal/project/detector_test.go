package project

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFindRoot tests workspace detection climbing up the directory tree
func TestFindRoot(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) (string, string) // returns (startPath, expectedRoot)
		allowAncestor bool                                // a marked ancestor of the temp dir may win
	}{
		{
			name: "finds root with config file",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				if err := os.WriteFile(filepath.Join(tmpDir, ".compfinderrc.yaml"), []byte("sort: bronze\n"), 0644); err != nil {
					t.Fatalf("failed to create config: %v", err)
				}
				subDir := filepath.Join(tmpDir, "notes", "deep")
				if err := os.MkdirAll(subDir, 0755); err != nil {
					t.Fatalf("failed to create subdirectory: %v", err)
				}
				return subDir, tmpDir
			},
		},
		{
			name: "finds root with default dataset",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				if err := os.WriteFile(filepath.Join(tmpDir, DefaultDataFile), []byte(`{"levels":{}}`), 0644); err != nil {
					t.Fatalf("failed to create dataset: %v", err)
				}
				subDir := filepath.Join(tmpDir, "sub")
				if err := os.MkdirAll(subDir, 0755); err != nil {
					t.Fatalf("failed to create subdirectory: %v", err)
				}
				return subDir, tmpDir
			},
		},
		{
			name: "data directory marks the root",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				if err := os.MkdirAll(filepath.Join(tmpDir, "data"), 0755); err != nil {
					t.Fatalf("failed to create data dir: %v", err)
				}
				return tmpDir, tmpDir
			},
		},
		{
			name: "no markers returns start path",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				subDir := filepath.Join(tmpDir, "plain")
				if err := os.MkdirAll(subDir, 0755); err != nil {
					t.Fatalf("failed to create subdirectory: %v", err)
				}
				return subDir, subDir
			},
			allowAncestor: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startPath, expectedRoot := tt.setupFunc(t)
			got, err := FindRoot(startPath)
			if err != nil {
				t.Fatalf("FindRoot() error = %v", err)
			}
			if tt.allowAncestor && got != expectedRoot && isWorkspaceRoot(got) {
				return
			}
			if got != expectedRoot {
				t.Errorf("FindRoot() = %q, want %q", got, expectedRoot)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".compfinderrc.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "data"), 0755); err != nil {
		t.Fatal(err)
	}

	info := Detect(tmpDir)
	if info.ConfigFile != ".compfinderrc.json" {
		t.Errorf("ConfigFile = %q", info.ConfigFile)
	}
	if info.HasData {
		t.Error("HasData = true, want false")
	}
	if !info.HasDataDir {
		t.Error("HasDataDir = false, want true")
	}
}

func TestResolvePath(t *testing.T) {
	root := t.TempDir()
	inRoot := filepath.Join(root, "comps.json")
	if err := os.WriteFile(inRoot, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	// a local path that a mixed-case URL would collapse to under root
	shadow := filepath.Join(root, "Http:", "example.com")
	if err := os.MkdirAll(shadow, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shadow, "comps.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data string
		want string
	}{
		{"found under root", "comps.json", inRoot},
		{"absolute kept", inRoot, inRoot},
		{"url kept", "https://example.com/comps.json", "https://example.com/comps.json"},
		{"mixed case url kept", "Http://example.com/comps.json", "Http://example.com/comps.json"},
		{"missing everywhere kept", "nowhere.json", "nowhere.json"},
		{"empty kept", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(root, tt.data); got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}
