// Package terminal reports whether the installer is attached to a TTY.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// isTerminal is a seam for tests.
var isTerminal = term.IsTerminal

type fder interface {
	Fd() uintptr
}

// IsInteractive reports whether the process stdin and stdout are both terminals.
func IsInteractive() bool {
	return Interactive(os.Stdin, os.Stdout)
}

// Interactive reports whether in and out are both terminal file descriptors.
// Streams without a descriptor, such as buffers in tests, are never interactive.
func Interactive(in any, out any) bool {
	inFile, ok := in.(fder)
	if !ok {
		return false
	}
	outFile, ok := out.(fder)
	if !ok {
		return false
	}
	return isTerminal(int(inFile.Fd())) && isTerminal(int(outFile.Fd()))
}
