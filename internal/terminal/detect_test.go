package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withTerminal(t *testing.T, fn func(int) bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = fn
	t.Cleanup(func() { isTerminal = orig })
}

func TestInteractiveRequiresDescriptors(t *testing.T) {
	withTerminal(t, func(int) bool { return true })
	assert.False(t, Interactive(&bytes.Buffer{}, os.Stdout))
	assert.False(t, Interactive(os.Stdin, &bytes.Buffer{}))
	assert.True(t, Interactive(os.Stdin, os.Stdout))
}

func TestInteractiveRequiresBothTerminals(t *testing.T) {
	stdoutFd := int(os.Stdout.Fd())
	withTerminal(t, func(fd int) bool { return fd == stdoutFd })
	assert.False(t, Interactive(os.Stdin, os.Stdout))
}

func TestIsInteractiveUsesProcessStreams(t *testing.T) {
	var seen []int
	withTerminal(t, func(fd int) bool {
		seen = append(seen, fd)
		return true
	})
	assert.True(t, IsInteractive())
	assert.Equal(t, []int{int(os.Stdin.Fd()), int(os.Stdout.Fd())}, seen)
}
