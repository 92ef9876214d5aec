package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pplus-installer/internal/testutil"
)

// faultySystem wraps RealSystem and fails selected operations.
type faultySystem struct {
	RealSystem
	readErr   error
	removeErr map[string]error
	removed   []string
}

func (f *faultySystem) ReadFile(name string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.RealSystem.ReadFile(name)
}

func (f *faultySystem) RemoveAll(path string) error {
	f.removed = append(f.removed, path)
	if err, ok := f.removeErr[filepath.Base(path)]; ok {
		return err
	}
	return f.RealSystem.RemoveAll(path)
}

func TestIsInstalled(t *testing.T) {
	root := t.TempDir()
	inspector := NewInspector(nil)
	assert.False(t, inspector.IsInstalled(root))

	testutil.WriteFile(t, filepath.Join(root, MarkerDir), "not a directory")
	assert.False(t, inspector.IsInstalled(root))

	other := t.TempDir()
	testutil.WriteInstall(t, other, "")
	assert.True(t, inspector.IsInstalled(other))
}

func TestReadInstalledVersion(t *testing.T) {
	root := t.TempDir()
	testutil.WriteInstall(t, root, testutil.MetaXML(" 2.3.2 "))

	got, err := NewInspector(nil).ReadInstalledVersion(root)
	require.NoError(t, err)
	assert.Equal(t, "2.3.2", got)
}

func TestReadInstalledVersionNotInstalled(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, MetadataPath(root), testutil.MetaXML("2.3.2"))

	got, err := NewInspector(nil).ReadInstalledVersion(root)
	require.NoError(t, err)
	assert.Equal(t, UnknownVersion, got)
}

func TestReadInstalledVersionMissingMetadata(t *testing.T) {
	root := t.TempDir()
	testutil.WriteInstall(t, root, "")

	got, err := NewInspector(nil).ReadInstalledVersion(root)
	require.NoError(t, err)
	assert.Equal(t, UnknownVersion, got)
}

func TestReadInstalledVersionMalformed(t *testing.T) {
	tests := map[string]string{
		"broken xml":     "<app><version>2.3.2</app",
		"no version":     "<app><name>Project+</name></app>",
		"wrong root":     "<meta><version>2.3.2</version></meta>",
		"empty version":  "<app><version>  </version></app>",
		"not xml at all": "version=2.3.2",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			testutil.WriteInstall(t, root, content)

			got, err := NewInspector(nil).ReadInstalledVersion(root)
			assert.Equal(t, UnknownVersion, got)
			var metaErr *MetadataError
			require.ErrorAs(t, err, &metaErr)
			assert.Equal(t, MetadataPath(root), metaErr.Path)
			assert.Contains(t, err.Error(), "unreadable metadata")
		})
	}
}

func TestReadInstalledVersionReadFailure(t *testing.T) {
	root := t.TempDir()
	testutil.WriteInstall(t, root, testutil.MetaXML("2.3.2"))
	sys := &faultySystem{readErr: os.ErrPermission}

	got, err := NewInspector(sys).ReadInstalledVersion(root)
	assert.Equal(t, UnknownVersion, got)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestRemovePrevious(t *testing.T) {
	root := t.TempDir()
	testutil.WriteInstall(t, root, testutil.MetaXML("2.3.2"))
	testutil.WriteFile(t, filepath.Join(root, "apps", "homebrew", "boot.dol"), "keep")

	inspector := NewInspector(nil)
	assert.Empty(t, inspector.RemovePrevious(root))
	assert.False(t, inspector.IsInstalled(root))
	assert.NoFileExists(t, MetadataPath(root))
	assert.FileExists(t, filepath.Join(root, "apps", "homebrew", "boot.dol"))
}

func TestRemovePreviousIsIdempotent(t *testing.T) {
	root := t.TempDir()
	inspector := NewInspector(nil)
	assert.Empty(t, inspector.RemovePrevious(root))
	assert.Empty(t, inspector.RemovePrevious(filepath.Join(root, "does-not-exist")))
}

func TestRemovePreviousContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	testutil.WriteInstall(t, root, testutil.MetaXML("2.3.2"))
	sys := &faultySystem{removeErr: map[string]error{
		MarkerDir: errors.New("write protected"),
		"projplus": os.ErrNotExist,
	}}

	errs := NewInspector(sys).RemovePrevious(root)
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "write protected")
	assert.Len(t, sys.removed, 2)
}
