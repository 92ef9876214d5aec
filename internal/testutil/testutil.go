package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// MetaXML returns Homebrew Channel metadata recording version.
// version is written verbatim into the version element.
func MetaXML(version string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<app version="1">
  <name>Project+</name>
  <coder>Project+ Team</coder>
  <version>%s</version>
  <short_description>Project+ launcher</short_description>
</app>
`, version)
}

// WriteInstall lays out a prior Project+ install under root.
// t is the active test; root is the fake drive; metadata is the meta.xml
// content, or empty to leave the metadata file out.
func WriteInstall(t *testing.T, root string, metadata string) {
	t.Helper()
	WriteFile(t, filepath.Join(root, "Project+", "pf", "menu3", "data.sel"), "stage list")
	if metadata == "" {
		MkdirAll(t, filepath.Join(root, "apps", "projplus"))
		return
	}
	WriteFile(t, filepath.Join(root, "apps", "projplus", "meta.xml"), metadata)
}

// WriteFile writes content to path, creating parent directories.
// t is the active test; path is the file to write.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MkdirAll creates dir and its parents.
// t is the active test; dir is the directory to create.
func MkdirAll(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// BoolPtr returns a pointer to v.
// v is the boolean value to take the address of.
func BoolPtr(v bool) *bool {
	return &v
}
