// Package version parses and orders the semantic versions used by the
// installer, the bundled payload and the release feed.
package version

import (
	"errors"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/conn-castle/pplus-installer/internal/messages"
)

// Ordering is the result of comparing two versions.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("ordering(%d)", int(o))
	}
}

// ParseError reports a version string that is not of the form X.Y.Z.
// Callers treat it the same as an unknown version.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(messages.VersionInvalidFmt, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsDev reports whether raw names a development build without a release version.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "dev" || trimmed == "(devel)"
}

// Parse validates raw and returns the parsed version.
// A leading "v" is accepted; exactly three numeric segments are required.
func Parse(raw string) (*goversion.Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Raw: raw, Err: errors.New(messages.VersionRequired)}
	}
	core := strings.TrimPrefix(trimmed, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	if strings.Count(core, ".") != 2 {
		return nil, &ParseError{Raw: raw}
	}
	v, err := goversion.NewSemver(trimmed)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return v, nil
}

// Normalize returns raw in canonical X.Y.Z form (with any pre-release suffix kept).
func Normalize(raw string) (string, error) {
	v, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Compare orders a against b by numeric major, minor and patch fields.
func Compare(a string, b string) (Ordering, error) {
	av, err := Parse(a)
	if err != nil {
		return Equal, err
	}
	bv, err := Parse(b)
	if err != nil {
		return Equal, err
	}
	return Ordering(av.Compare(bv)), nil
}
