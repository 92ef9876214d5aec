// Package updatewarn prints a one-line notice when a newer installer exists.
package updatewarn

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/render"
	"github.com/conn-castle/pplus-installer/internal/update"
)

// Checker reports the latest release.
type Checker interface {
	Check(ctx context.Context, currentVersion string) (update.CheckResult, error)
}

// WarnIfOutdated writes a warning to stderr when a newer release is available.
// It is best-effort and never returns an error. Check failures are only
// logged, and dev builds are never warned about.
func WarnIfOutdated(ctx context.Context, checker Checker, currentVersion string, downloadURL string, stderr io.Writer) {
	if checker == nil {
		return
	}
	if stderr == nil {
		stderr = io.Discard
	}

	result, err := checker.Check(ctx, currentVersion)
	if err != nil {
		if update.IsRateLimitError(err) {
			log.WithError(err).Debug("update check rate limited")
			return
		}
		log.WithError(err).Debug("update check failed")
		return
	}
	if result.CurrentIsDev {
		log.WithField("latest", result.Latest).Debug("dev build; skipping update warning")
		return
	}
	if result.Outdated {
		render.Warn(stderr, messages.UpdateWarnAvailableFmt, result.Latest, result.Current, downloadURL)
	}
}
