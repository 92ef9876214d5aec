// Package eligibility decides whether a drive can receive the payload.
package eligibility

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/pplus-installer/internal/drive"
	"github.com/conn-castle/pplus-installer/internal/messages"
)

// Reason names why a drive was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	TooLarge
	NeverFits
	InsufficientFreeSpace
	NotRemovable
	WrongFilesystem
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return messages.DriveEligibleLabel
	case TooLarge:
		return messages.DriveReasonTooLarge
	case NeverFits:
		return messages.DriveReasonNeverFits
	case InsufficientFreeSpace:
		return messages.DriveReasonInsufficientFree
	case NotRemovable:
		return messages.DriveReasonNotRemovable
	case WrongFilesystem:
		return messages.DriveReasonWrongFilesystem
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Message returns the guidance shown to the user for r.
func (r Reason) Message() string {
	switch r {
	case TooLarge:
		return messages.DriveTooLarge
	case NeverFits:
		return messages.DriveNeverFits
	case InsufficientFreeSpace:
		return messages.DriveInsufficientFreeSpace
	case NotRemovable:
		return messages.DriveNotRemovable
	case WrongFilesystem:
		return messages.DriveWrongFilesystem
	default:
		return fmt.Sprintf(messages.DriveUnknownReasonFmt, r)
	}
}

// MarshalText renders r by its short label in JSON reports.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Verdict is either Eligible or Rejected with a Reason.
type Verdict struct {
	Eligible bool   `json:"eligible"`
	Reason   Reason `json:"reason"`
}

// Eligible is the verdict for a drive that passes every rule.
var Eligible = Verdict{Eligible: true}

// Rejected returns the verdict for a drive that failed a rule.
func Rejected(r Reason) Verdict {
	return Verdict{Reason: r}
}

// Evaluate applies the rules in order and returns the first failure.
// Capacity rules run before removability and filesystem.
// When alreadyInstalled is true, low free space is not a rejection: deleting
// the prior install may reclaim enough room.
func Evaluate(facts drive.Facts, policy Policy, alreadyInstalled bool) Verdict {
	if v, rejected := evaluateCapacity(facts, policy); rejected {
		return v
	}
	if facts.FreeBytes < policy.RequiredFreeBytes && !alreadyInstalled {
		return Rejected(InsufficientFreeSpace)
	}
	if !facts.Removable {
		return Rejected(NotRemovable)
	}
	if !policy.AllowsFilesystem(facts.Filesystem) {
		return Rejected(WrongFilesystem)
	}
	return Eligible
}

// evaluateCapacity applies only the too-large and never-fits rules.
func evaluateCapacity(facts drive.Facts, policy Policy) (Verdict, bool) {
	if facts.TotalBytes > policy.MaxDriveBytes {
		return Rejected(TooLarge), true
	}
	if facts.TotalBytes < policy.neverFitsBelow() {
		return Rejected(NeverFits), true
	}
	return Eligible, false
}

// FactSource reports facts for one path.
type FactSource interface {
	Facts(ctx context.Context, path string) (drive.Facts, error)
}

// InstallChecker reports whether a prior install exists under path.
type InstallChecker func(path string) bool

// RejectionError is returned by EvaluateWithReason for a rejected drive.
type RejectionError struct {
	Path   string
	Reason Reason
}

func (e *RejectionError) Error() string {
	return e.Reason.Message()
}

// AsRejection extracts a *RejectionError from err.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// EvaluateWithReason checks a single path and returns nil when it is eligible.
// A rejected path yields a *RejectionError; failing to read facts yields a
// wrapped provider error instead.
func EvaluateWithReason(ctx context.Context, source FactSource, installed InstallChecker, path string, policy Policy) error {
	facts, err := source.Facts(ctx, path)
	if err != nil {
		return fmt.Errorf(messages.DriveFactsFailedFmt, path, err)
	}
	verdict := Evaluate(facts, policy, checkInstalled(installed, path))
	if verdict.Eligible {
		return nil
	}
	log.WithFields(log.Fields{"path": path, "reason": verdict.Reason.String()}).Info("drive rejected")
	return &RejectionError{Path: path, Reason: verdict.Reason}
}

// ListEligible returns the paths whose verdict is Eligible, in input order.
// Paths whose facts cannot be read are skipped.
func ListEligible(ctx context.Context, source FactSource, installed InstallChecker, paths []string, policy Policy) []string {
	return filterPaths(ctx, source, paths, func(path string, facts drive.Facts) bool {
		verdict := Evaluate(facts, policy, checkInstalled(installed, path))
		log.WithFields(log.Fields{"path": path, "verdict": verdict.Reason.String()}).Debug("evaluated candidate")
		return verdict.Eligible
	})
}

// Discovery is the outcome of Discover.
type Discovery struct {
	Paths []string
	// Bypassed is set when no path was eligible and Paths holds every
	// candidate that passes the capacity rules alone.
	Bypassed bool
}

// Discover runs ListEligible and, when that finds nothing, falls back to every
// path that passes the too-large and never-fits rules. The fallback leaves the
// remaining rules to EvaluateWithReason once the user has chosen.
func Discover(ctx context.Context, source FactSource, installed InstallChecker, paths []string, policy Policy) Discovery {
	if eligible := ListEligible(ctx, source, installed, paths, policy); len(eligible) > 0 {
		return Discovery{Paths: eligible}
	}
	fallback := filterPaths(ctx, source, paths, func(_ string, facts drive.Facts) bool {
		_, rejected := evaluateCapacity(facts, policy)
		return !rejected
	})
	log.WithField("count", len(fallback)).Info("no eligible drives; offering unfiltered candidates")
	return Discovery{Paths: fallback, Bypassed: true}
}

func filterPaths(ctx context.Context, source FactSource, paths []string, keep func(string, drive.Facts) bool) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		facts, err := source.Facts(ctx, path)
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("skipping drive")
			continue
		}
		if keep(path, facts) {
			out = append(out, path)
		}
	}
	return out
}

func checkInstalled(installed InstallChecker, path string) bool {
	if installed == nil {
		return false
	}
	return installed(path)
}
