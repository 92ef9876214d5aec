// Package wizard runs the interactive install flow as a linear state machine.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/pplus-installer/internal/drive"
	"github.com/conn-castle/pplus-installer/internal/eligibility"
	"github.com/conn-castle/pplus-installer/internal/install"
	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/render"
	"github.com/conn-castle/pplus-installer/internal/update"
	"github.com/conn-castle/pplus-installer/internal/version"
)

// UpdateChecker reports whether a newer installer release exists.
type UpdateChecker interface {
	Check(ctx context.Context, currentVersion string) (update.CheckResult, error)
}

// Inspector finds and removes prior installations on a drive.
type Inspector interface {
	IsInstalled(root string) bool
	ReadInstalledVersion(root string) (string, error)
	RemovePrevious(root string) []error
}

// Extractor unpacks the payload archive onto a drive.
type Extractor interface {
	Extract(ctx context.Context, archivePath string, destination string) error
}

// Options are the per-run settings.
type Options struct {
	Policy         eligibility.Policy
	PayloadVersion string
	ArchivePath    string
	// CurrentVersion is the installer's own version, compared against releases.
	CurrentVersion string
	// Drive, when set, skips drive selection.
	Drive       string
	UpdateCheck bool
	DownloadURL string
}

// Deps are the collaborators the wizard drives.
type Deps struct {
	UI        UI
	Drives    drive.Provider
	Inspector Inspector
	Extractor Extractor
	Updates   UpdateChecker
	OpenURL   func(url string) error
	Out       io.Writer
}

// Wizard sequences the install steps.
type Wizard struct {
	opts    Options
	deps    Deps
	state   State
	visited []State
}

// New returns a Wizard ready to Run. A nil Out discards progress output and a
// nil OpenURL uses the system browser.
func New(opts Options, deps Deps) *Wizard {
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.OpenURL == nil {
		deps.OpenURL = update.OpenDownloadPage
	}
	return &Wizard{opts: opts, deps: deps, state: StateCheckingForUpdate}
}

// State returns the current state.
func (w *Wizard) State() State {
	return w.state
}

// Visited returns the states entered so far, in order.
func (w *Wizard) Visited() []State {
	return append([]State(nil), w.visited...)
}

// Run walks the flow from CheckingForUpdate to Complete. A nil error means
// the payload was installed; any other outcome is an *AbortError.
func (w *Wizard) Run(ctx context.Context) error {
	w.enter(StateCheckingForUpdate)
	if err := w.checkForUpdate(ctx); err != nil {
		return err
	}

	w.enter(StateWelcome)
	if err := w.deps.UI.Note(messages.WizardWelcomeTitle, fmt.Sprintf(messages.WizardWelcomeBodyFmt, w.opts.PayloadVersion)); err != nil {
		return w.promptFailed(err, messages.WizardCancelled)
	}

	w.enter(StateSelectingDrive)
	path, err := w.selectDrive(ctx)
	if err != nil {
		return err
	}

	w.enter(StateValidatingDrive)
	if err := w.validate(ctx, path, w.deps.Inspector.IsInstalled); err != nil {
		return err
	}

	if w.deps.Inspector.IsInstalled(path) {
		w.enter(StateHandlingExistingInstall)
		if err := w.handleExistingInstall(ctx, path); err != nil {
			return err
		}
	}

	w.enter(StateExtracting)
	if err := w.extract(ctx, path); err != nil {
		return err
	}

	w.enter(StateComplete)
	w.complete(ctx, path)
	return nil
}

func (w *Wizard) enter(s State) {
	w.state = s
	w.visited = append(w.visited, s)
	log.WithField("state", s.String()).Debug("wizard state")
}

func (w *Wizard) abort(kind AbortKind, message string, err error) error {
	failed := w.state
	w.enter(StateAborted)
	entry := log.WithFields(log.Fields{"kind": kind.String(), "from": failed.String()})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Info("wizard aborted")
	return &AbortError{Kind: kind, State: failed, Message: message, Err: err}
}

// promptFailed maps a UI error to an abort. Dismissing a prompt cancels
// with cancelMessage; anything else (such as a missing terminal) is internal.
func (w *Wizard) promptFailed(err error, cancelMessage string) error {
	if errors.Is(err, errCancelled) {
		return w.abort(AbortUserCancelled, cancelMessage, err)
	}
	return w.abort(AbortInternal, err.Error(), err)
}

func (w *Wizard) checkForUpdate(ctx context.Context) error {
	if !w.opts.UpdateCheck || w.deps.Updates == nil {
		return nil
	}
	result, err := w.deps.Updates.Check(ctx, w.opts.CurrentVersion)
	if err != nil {
		log.WithError(err).Debug("update check failed")
		return nil
	}
	if !result.Outdated {
		return nil
	}

	openPage := true
	prompt := fmt.Sprintf(messages.WizardUpdateAvailablePromptFmt, result.Latest, result.Current)
	if err := w.deps.UI.Confirm(prompt, &openPage); err != nil {
		return w.promptFailed(err, messages.WizardCancelled)
	}
	if !openPage {
		return nil
	}
	if err := w.deps.OpenURL(w.opts.DownloadURL); err != nil {
		return w.abort(AbortUpdateAccepted, fmt.Sprintf(messages.WizardUpdateOpenFailedFmt, w.opts.DownloadURL), err)
	}
	return w.abort(AbortUpdateAccepted, fmt.Sprintf(messages.WizardUpdateOpenedFmt, w.opts.DownloadURL), nil)
}

// selectDrive returns the path the install targets.
func (w *Wizard) selectDrive(ctx context.Context) (string, error) {
	if forced := drive.VolumeRoot(strings.TrimSpace(w.opts.Drive)); forced != "" {
		log.WithField("path", forced).Debug("using drive from flags")
		return forced, nil
	}

	candidates, err := w.deps.Drives.Candidates(ctx)
	if err != nil {
		wrapped := fmt.Errorf(messages.ListDrivesFailedFmt, err)
		return "", w.abort(AbortInternal, wrapped.Error(), wrapped)
	}
	found := eligibility.Discover(ctx, w.deps.Drives, w.deps.Inspector.IsInstalled, candidates, w.opts.Policy)
	if len(found.Paths) == 0 {
		return "", w.abort(AbortValidation, messages.WizardNoDrivesAvailable, nil)
	}
	if found.Bypassed {
		if err := w.deps.UI.Note(messages.WizardBypassNoteTitle, messages.WizardBypassNoteBody); err != nil {
			return "", w.promptFailed(err, messages.WizardDriveNotSelected)
		}
	}

	var chosen string
	if err := w.deps.UI.Select(messages.WizardSelectDriveTitle, w.driveChoices(ctx, found.Paths), &chosen); err != nil {
		return "", w.promptFailed(err, messages.WizardDriveNotSelected)
	}
	if chosen == "" {
		return "", w.abort(AbortUserCancelled, messages.WizardDriveNotSelected, nil)
	}
	return chosen, nil
}

func (w *Wizard) driveChoices(ctx context.Context, paths []string) []Choice {
	choices := make([]Choice, 0, len(paths))
	for _, path := range paths {
		label := path
		if facts, err := w.deps.Drives.Facts(ctx, path); err == nil {
			label = fmt.Sprintf(messages.WizardDriveOptionFmt, path, drive.FormatBytes(facts.TotalBytes), drive.FormatBytes(facts.FreeBytes))
		}
		choices = append(choices, Choice{Label: label, Value: path})
	}
	return choices
}

func (w *Wizard) validate(ctx context.Context, path string, installed eligibility.InstallChecker) error {
	err := eligibility.EvaluateWithReason(ctx, w.deps.Drives, installed, path, w.opts.Policy)
	if err == nil {
		return nil
	}
	if rejection, ok := eligibility.AsRejection(err); ok {
		return w.abort(AbortValidation, rejection.Error(), err)
	}
	return w.abort(AbortInternal, fmt.Sprintf(messages.WizardDriveUnreadableFmt, path), err)
}

func (w *Wizard) handleExistingInstall(ctx context.Context, path string) error {
	installed, err := w.deps.Inspector.ReadInstalledVersion(path)
	if err != nil {
		log.WithError(err).Warn("treating installed version as unknown")
		installed = install.UnknownVersion
	}

	reinstall := true
	prompt := w.installStatus(installed) + "\n\n" + messages.WizardReinstallPrompt
	if err := w.deps.UI.Confirm(prompt, &reinstall); err != nil {
		return w.promptFailed(err, messages.WizardCancelled)
	}
	if !reinstall {
		return w.abort(AbortUserCancelled, messages.WizardReinstallDeclined, nil)
	}

	if failures := w.deps.Inspector.RemovePrevious(path); len(failures) > 0 {
		log.WithField("failures", len(failures)).Warn("prior install only partly removed")
	}

	// The prior install no longer counts toward free space.
	return w.validate(ctx, path, nil)
}

func (w *Wizard) installStatus(installed string) string {
	if installed == install.UnknownVersion {
		return messages.WizardInstalledUnknown
	}
	order, err := version.Compare(installed, w.opts.PayloadVersion)
	if err != nil {
		log.WithError(err).Debug("cannot compare installed version")
		return messages.WizardInstalledUnknown
	}
	switch order {
	case version.Less:
		return fmt.Sprintf(messages.WizardInstalledOutdatedFmt, installed, w.opts.PayloadVersion)
	case version.Greater:
		return fmt.Sprintf(messages.WizardInstalledNewerFmt, installed, w.opts.PayloadVersion)
	default:
		return fmt.Sprintf(messages.WizardInstalledSameFmt, installed)
	}
}

func (w *Wizard) extract(ctx context.Context, path string) error {
	_, _ = fmt.Fprintf(w.deps.Out, messages.WizardExtracting, path)
	if err := w.deps.Extractor.Extract(ctx, w.opts.ArchivePath, path); err != nil {
		if ctx.Err() != nil {
			return w.abort(AbortUserCancelled, messages.WizardCancelled, err)
		}
		return w.abort(AbortExtraction, messages.WizardExtractionFailed, err)
	}
	return nil
}

func (w *Wizard) complete(ctx context.Context, path string) {
	message := messages.WizardCompleteHomebrew
	facts, err := w.deps.Drives.Facts(ctx, path)
	if err != nil {
		log.WithError(err).Debug("cannot read drive size for completion notice")
	} else if w.opts.Policy.SupportsStageBuilder(facts.TotalBytes) {
		message = messages.WizardCompleteStageBuilder
	}
	_, _ = fmt.Fprintln(w.deps.Out, render.Banner(messages.WizardCompleteTitle, message))
}
