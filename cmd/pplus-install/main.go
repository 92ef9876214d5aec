package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/conn-castle/pplus-installer/internal/eligibility"
	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/render"
	"github.com/conn-castle/pplus-installer/internal/wizard"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Exit codes reported by the installer.
const (
	exitOK         = 0
	exitFailure    = 1
	exitRejected   = 2
	exitNotApplied = 3
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the CLI command with the provided args and output writers.
// SIGINT cancels the command context.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// runMain executes the CLI and exits with the code matching the outcome.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	if notApplied(err) {
		_, _ = fmt.Fprintln(stderr, err.Error())
	} else {
		render.Error(stderr, err.Error())
	}
	exit(exitCode(err))
}

// notApplied reports whether err ended the run without a failure.
func notApplied(err error) bool {
	var abortErr *wizard.AbortError
	if !errors.As(err, &abortErr) {
		return false
	}
	return abortErr.Kind == wizard.AbortUserCancelled || abortErr.Kind == wizard.AbortUpdateAccepted
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var abortErr *wizard.AbortError
	if errors.As(err, &abortErr) {
		switch abortErr.Kind {
		case wizard.AbortUserCancelled, wizard.AbortUpdateAccepted:
			return exitNotApplied
		case wizard.AbortValidation:
			return exitRejected
		default:
			return exitFailure
		}
	}
	if _, ok := eligibility.AsRejection(err); ok {
		return exitRejected
	}
	return exitFailure
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	meta := []string{}
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}
