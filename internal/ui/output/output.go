// Package output creates termenv outputs with a colour profile chosen from
// the environment and the destination writer.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Profile returns the colour profile for w.
// NO_COLOR disables colour. CLICOLOR_FORCE or CI enable basic ANSI colour on
// any writer. Otherwise terminals get their detected profile and everything
// else gets plain text.
func Profile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if os.Getenv("CLICOLOR_FORCE") != "" || isCI() {
		return termenv.ANSI
	}
	if !IsTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in an int
}

func isCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// New creates a termenv.Output for w using Profile. A nil w means os.Stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile(w)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
