package capture

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal switches a terminal into raw input mode
type Terminal interface {
	// MakeRaw disables echo and line buffering and returns a function that
	// restores the previous mode
	MakeRaw() (restore func() error, err error)
}

// FileTerminal is a Terminal backed by a file descriptor, usually stdin
type FileTerminal struct {
	f *os.File
}

// NewFileTerminal wraps f
func NewFileTerminal(f *os.File) *FileTerminal {
	return &FileTerminal{f: f}
}

// IsTerminal reports whether the file is a terminal
func (t *FileTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.f.Fd()))
}

// MakeRaw puts the terminal into raw mode
func (t *FileTerminal) MakeRaw() (func() error, error) {
	fd := int(t.f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", t.f.Name())
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return func() error {
		return term.Restore(fd, old)
	}, nil
}
