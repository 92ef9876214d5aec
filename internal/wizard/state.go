package wizard

import "fmt"

// State is a step of the install flow.
type State int

const (
	StateCheckingForUpdate State = iota
	StateWelcome
	StateSelectingDrive
	StateValidatingDrive
	StateHandlingExistingInstall
	StateExtracting
	StateComplete
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCheckingForUpdate:
		return "checking-for-update"
	case StateWelcome:
		return "welcome"
	case StateSelectingDrive:
		return "selecting-drive"
	case StateValidatingDrive:
		return "validating-drive"
	case StateHandlingExistingInstall:
		return "handling-existing-install"
	case StateExtracting:
		return "extracting"
	case StateComplete:
		return "complete"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AbortKind classifies why the wizard stopped before Complete.
type AbortKind int

const (
	// AbortUserCancelled covers dismissed prompts and declined reinstalls.
	AbortUserCancelled AbortKind = iota + 1
	// AbortValidation means the chosen drive was rejected.
	AbortValidation
	// AbortExtraction means writing the payload failed.
	AbortExtraction
	// AbortUpdateAccepted means the user chose to download a newer installer.
	AbortUpdateAccepted
	// AbortInternal covers I/O failures that are not the user's doing.
	AbortInternal
)

func (k AbortKind) String() string {
	switch k {
	case AbortUserCancelled:
		return "user-cancelled"
	case AbortValidation:
		return "validation-rejected"
	case AbortExtraction:
		return "extraction-failed"
	case AbortUpdateAccepted:
		return "update-accepted"
	case AbortInternal:
		return "internal"
	default:
		return fmt.Sprintf("abort(%d)", int(k))
	}
}

// AbortError is returned by Run when the flow ends in Aborted.
// Message is the text shown to the user.
type AbortError struct {
	Kind    AbortKind
	State   State
	Message string
	Err     error
}

func (e *AbortError) Error() string {
	return e.Message
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
