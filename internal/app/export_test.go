package app

import "io"

// WithTerminal overrides terminal detection for stderr.
func (a *App) WithTerminal(isTerminal bool) *App {
	a.isTerminal = func(io.Writer) bool { return isTerminal }
	return a
}
