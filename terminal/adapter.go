// Package terminal provides the concrete TerminalAdapter the wrecked
// package needs to actually talk to a real terminal: raw mode, the
// alternate screen buffer, a hidden cursor and a buffered writer, all
// built on golang.org/x/term the way the teacher's tui.Screen builds
// NewScreen.
package terminal

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	wrecked "github.com/quintinfsmith/wrecked-sub000"
)

// state is the PrepareToken this adapter hands back to the compositor:
// whatever term.MakeRaw returned, so Restore can undo it. A nil state
// means raw mode was never actually entered (the fd wasn't a terminal,
// or MakeRaw failed) and Restore is a no-op for it.
type state struct {
	raw *term.State
}

var _ wrecked.TerminalAdapter = (*Adapter)(nil)

// Adapter is a TerminalAdapter backed by the process's stdin/stdout.
type Adapter struct {
	in  *os.File
	out *bufio.Writer
	fd  int
}

// New wraps os.Stdin/os.Stdout in an Adapter. The writer is buffered the
// way tui.Screen buffers its output, since a render can touch hundreds
// of cells in one pass.
func New() *Adapter {
	return &Adapter{
		in:  os.Stdin,
		out: bufio.NewWriterSize(os.Stdout, 64*1024),
		fd:  int(os.Stdout.Fd()),
	}
}

// Prepare enables raw mode, switches to the alternate screen buffer and
// hides the cursor. Raw mode failing (e.g. stdin isn't a tty) is logged
// to stderr and tolerated, matching the teacher's "Warning: Failed to
// enable raw mode" convention — the compositor still works, just with
// line-buffered input underneath it.
func (a *Adapter) Prepare() (wrecked.PrepareToken, error) {
	raw, err := term.MakeRaw(int(a.in.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "wrecked: warning: failed to enable raw mode: %v\n", err)
		raw = nil
	}

	a.out.WriteString("\x1b[?1049h")
	a.out.WriteString("\x1b[?25l")
	if err := a.out.Flush(); err != nil {
		return &state{raw: raw}, err
	}
	return &state{raw: raw}, nil
}

// Restore shows the cursor, leaves the alternate screen and restores
// whatever terminal mode was active before Prepare.
func (a *Adapter) Restore(token wrecked.PrepareToken) error {
	a.out.WriteString("\x1b[?25h")
	a.out.WriteString("\x1b[?1049l")
	flushErr := a.out.Flush()

	st, _ := token.(*state)
	var restoreErr error
	if st != nil && st.raw != nil {
		restoreErr = term.Restore(int(a.in.Fd()), st.raw)
	}

	if flushErr != nil {
		return flushErr
	}
	return restoreErr
}

// QuerySize reports stdout's current size. ok is false if the query
// fails (stdout isn't a tty, ioctl error).
func (a *Adapter) QuerySize() (cols, rows int, ok bool) {
	w, h, err := term.GetSize(a.fd)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// Write sends p to the buffered stdout writer and flushes immediately,
// so a render is visible as soon as it returns.
func (a *Adapter) Write(p []byte) (int, error) {
	n, err := a.out.Write(p)
	if err != nil {
		return n, err
	}
	return n, a.out.Flush()
}
