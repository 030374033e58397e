package wrecked

// PrepareToken is whatever a TerminalAdapter needs to remember in order to
// undo Prepare later (e.g. the terminal's prior termios state). It is
// opaque to the compositor — only the adapter that issued it interprets
// its contents.
type PrepareToken any

// TerminalAdapter is the thin capability boundary between the compositor
// and a real terminal: it disables canonical mode and local echo,
// switches to/from the alternate screen buffer, hides and restores the
// cursor, reports terminal size, and is the byte-sink that receives the
// serialized ANSI diff. The core calls Prepare once at construction,
// Restore once at Kill, and QuerySize whenever FitToTerminal is asked to
// resize the root.
type TerminalAdapter interface {
	// Prepare switches the terminal into raw, alternate-screen,
	// cursor-hidden mode and returns a token that reverses it.
	Prepare() (PrepareToken, error)

	// Restore reverses a prior Prepare.
	Restore(token PrepareToken) error

	// QuerySize reports the terminal's current size in columns and rows.
	// ok is false when the query fails; FitToTerminal treats that as "no
	// resize happened" rather than an error.
	QuerySize() (cols, rows int, ok bool)

	// Write is a best-effort write of the rendered escape sequence to the
	// terminal.
	Write(p []byte) (int, error)
}
