package wizard

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/terminal"
)

// errCancelled is returned by UI methods when the user dismisses a prompt.
var errCancelled = errors.New("prompt cancelled")

// Choice is one option in a Select prompt.
type Choice struct {
	Label string
	Value string
}

// UI defines the interaction methods.
type UI interface {
	Select(title string, choices []Choice, value *string) error
	Confirm(title string, value *bool) error
	Note(title string, body string) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a new HuhUI using terminal.IsInteractive.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the UI is invoked without a terminal.
func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.WizardRequiresTerminal)
}

// wizardKeyMap binds both Esc and Ctrl+C to form abort, which the wizard
// treats as cancelling the install. The field Prev binding is display-only
// so the help bar shows "esc cancel".
func wizardKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	escCancel := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", messages.WizardHintCancel))
	km.Select.Prev = escCancel
	km.Confirm.Prev = escCancel
	km.Note.Prev = escCancel

	// Drive lists are short.
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)

	return km
}

// hintField keeps the Prev hint visible in single-field forms. huh calls
// WithPosition on every key press, which disables Prev for the first field;
// the wrapper re-applies the wizard keymap afterwards.
type hintField struct {
	huh.Field
	km *huh.KeyMap
}

// Update delegates to the inner field and returns the wrapper so it stays in
// the group's field list.
func (f *hintField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

func (f *hintField) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

func newHintField(field huh.Field) huh.Field {
	return &hintField{Field: field, km: wizardKeyMap()}
}

// interruptToQuit converts InterruptMsg (huh's cancel command, or SIGINT) to
// QuitMsg so bubbletea clears the form before returning.
func interruptToQuit(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

// runForm validates terminal availability and runs form. A user abort
// returns errCancelled.
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	form.WithKeyMap(wizardKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(interruptToQuit),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return errCancelled
	}
	return err
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, choices []Choice, value *string) error {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Label, c.Value)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value)),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewConfirm().
				Title(title).
				Value(value)),
		),
	))
}

// Note renders an informational note screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewNote().
				Title(title).
				Description(body)),
		),
	))
}
