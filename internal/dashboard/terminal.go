package dashboard

import (
	"os"

	"golang.org/x/term"
)

// Terminal is the part of the controlling terminal the loop needs.
type Terminal interface {
	Size() (width, height int, err error)
	MakeRaw() (restore func() error, err error)
}

type ttyTerminal struct {
	in, out *os.File
}

// NewTTY wraps the process's terminal. Raw mode is set on in, the size is
// read from out.
func NewTTY(in, out *os.File) Terminal {
	return &ttyTerminal{in: in, out: out}
}

func (t *ttyTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}

func (t *ttyTerminal) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
