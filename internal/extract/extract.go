// Package extract unpacks the bundled 7z payload onto a drive.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/pplus-installer/internal/messages"
)

// Error reports a failed extraction. No cleanup of partially written files is attempted.
type Error struct {
	Archive     string
	Destination string
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf(messages.ExtractFailedFmt, e.Destination, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// entry is one member of an opened archive.
type entry struct {
	name string
	mode fs.FileMode
	open func() (io.ReadCloser, error)
}

// openFunc opens an archive and lists its members in archive order.
type openFunc func(path string) ([]entry, io.Closer, error)

// Extractor unpacks archives into a destination directory.
type Extractor struct {
	open     openFunc
	progress func(name string)
}

// New returns an Extractor for 7z archives.
// progress, if non-nil, is called with each member name before it is written.
func New(progress func(name string)) *Extractor {
	return &Extractor{open: openSevenZip, progress: progress}
}

func openSevenZip(path string) ([]entry, io.Closer, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, entry{
			name: f.Name,
			mode: f.FileInfo().Mode(),
			open: f.Open,
		})
	}
	return entries, r, nil
}

// Extract writes every member of archivePath under destination.
// Members that would resolve outside destination, and members that are
// neither regular files nor directories, abort the extraction.
func (x *Extractor) Extract(ctx context.Context, archivePath string, destination string) error {
	if strings.TrimSpace(destination) == "" {
		return &Error{Archive: archivePath, Err: errors.New(messages.ExtractDestinationMissing)}
	}
	entries, closer, err := x.open(archivePath)
	if err != nil {
		return &Error{Archive: archivePath, Destination: destination, Err: fmt.Errorf(messages.ExtractOpenArchiveFmt, archivePath, err)}
	}
	defer func() { _ = closer.Close() }()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return &Error{Archive: archivePath, Destination: destination, Err: err}
		}
		if err := x.extractEntry(destination, e); err != nil {
			return &Error{Archive: archivePath, Destination: destination, Err: err}
		}
	}
	log.WithFields(log.Fields{"archive": archivePath, "destination": destination, "entries": len(entries)}).Info("extraction complete")
	return nil
}

func (x *Extractor) extractEntry(destination string, e entry) error {
	target, err := safeJoin(destination, e.name)
	if err != nil {
		return err
	}
	if !e.mode.IsDir() && !e.mode.IsRegular() {
		return fmt.Errorf(messages.ExtractIrregularEntryFmt, e.name, e.mode.Type())
	}
	if x.progress != nil {
		x.progress(e.name)
	}
	log.WithField("entry", e.name).Trace("extracting")

	if e.mode.IsDir() {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf(messages.ExtractCreateDirFailedFmt, target, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.ExtractCreateDirFailedFmt, filepath.Dir(target), err)
	}
	if err := writeEntry(target, e); err != nil {
		return fmt.Errorf(messages.ExtractEntryFailedFmt, e.name, err)
	}
	return nil
}

func writeEntry(target string, e entry) error {
	rc, err := e.open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// safeJoin resolves name under destination and rejects names that escape it.
func safeJoin(destination string, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf(messages.ExtractUnsafeEntryFmt, name)
	}
	return filepath.Join(destination, cleaned), nil
}
