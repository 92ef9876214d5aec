// Package install inspects and removes a prior Project+ installation on a drive.
package install

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/pplus-installer/internal/messages"
)

const (
	// MarkerDir is the top-level directory every Project+ install creates.
	MarkerDir = "Project+"
	// AppDir holds the Homebrew Channel launcher for the mod.
	AppDir = "apps/projplus"
	// MetadataFile is the Homebrew Channel metadata inside AppDir.
	MetadataFile = "meta.xml"

	// UnknownVersion is returned when the installed version cannot be determined.
	UnknownVersion = ""
)

// artifacts are removed, in order, before a reinstall.
var artifacts = []string{MarkerDir, AppDir}

// MetadataError reports an unreadable or malformed metadata file.
// Callers treat it the same as an unknown version.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf(messages.InstallMetadataUnreadableFmt, e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// Inspector looks for a prior install under a drive path.
type Inspector struct {
	sys System
}

// NewInspector returns an Inspector over sys. A nil sys uses RealSystem.
func NewInspector(sys System) *Inspector {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Inspector{sys: sys}
}

// IsInstalled reports whether the marker directory exists under root.
func (i *Inspector) IsInstalled(root string) bool {
	info, err := i.sys.Stat(filepath.Join(root, MarkerDir))
	return err == nil && info.IsDir()
}

// MetadataPath returns the path of the metadata file under root.
func MetadataPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(AppDir), MetadataFile)
}

type appMetadata struct {
	XMLName xml.Name `xml:"app"`
	Version string   `xml:"version"`
}

// ReadInstalledVersion returns the version recorded in the install's metadata.
// A missing marker directory or metadata file yields UnknownVersion and no
// error. A malformed file yields UnknownVersion and a *MetadataError.
func (i *Inspector) ReadInstalledVersion(root string) (string, error) {
	if !i.IsInstalled(root) {
		return UnknownVersion, nil
	}
	path := MetadataPath(root)
	data, err := i.sys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return UnknownVersion, nil
	}
	if err != nil {
		return UnknownVersion, &MetadataError{Path: path, Err: err}
	}
	var meta appMetadata
	if err := xml.Unmarshal(data, &meta); err != nil {
		return UnknownVersion, &MetadataError{Path: path, Err: err}
	}
	version := strings.TrimSpace(meta.Version)
	if version == "" {
		return UnknownVersion, &MetadataError{Path: path, Err: fmt.Errorf(messages.InstallMetadataMissingVersion, MetadataFile)}
	}
	return version, nil
}

// RemovePrevious deletes every prior-install artifact under root.
// Missing artifacts are not errors. Other failures are logged and returned so
// the caller can report them, but removal continues past them.
func (i *Inspector) RemovePrevious(root string) []error {
	var errs []error
	for _, rel := range artifacts {
		path := filepath.Join(root, filepath.FromSlash(rel))
		err := i.sys.RemoveAll(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		log.WithError(err).WithField("path", path).Warn("could not remove prior install artifact")
		errs = append(errs, fmt.Errorf(messages.InstallRemoveFailedFmt, path, err))
	}
	return errs
}
