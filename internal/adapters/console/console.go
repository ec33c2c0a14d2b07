// Package console provides the Diagnostics sink that prints build progress
// as one line per event.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/sob/internal/ui/output"
	"go.trai.ch/sob/internal/ui/style"
)

var _ ports.Diagnostics = (*Console)(nil)

// Console prints "<target>:<command>" before a command runs and
// "<target>:finished" or "<target>:failed (<reason>)" after it.
type Console struct {
	mu  sync.Mutex
	out *termenv.Output
}

// New creates a Console writing to w. A nil w means os.Stdout.
func New(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{out: output.New(w)}
}

// OnStart prints the command about to run.
func (c *Console) OnStart(target, command string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.printLocked(target, c.out.String(command).Foreground(c.out.Color(string(style.Muted))).String())
}

// OnFinish prints the outcome of a command.
func (c *Console) OnFinish(target string, outcome domain.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if outcome.Status == domain.StatusSucceeded {
		c.printLocked(target, c.out.String("finished").Foreground(c.out.Color(string(style.Green))).String())
		return
	}
	msg := fmt.Sprintf("failed (%s)", Reason(outcome))
	c.printLocked(target, c.out.String(msg).Foreground(c.out.Color(string(style.Red))).String())
}

func (c *Console) printLocked(target, text string) {
	_, _ = fmt.Fprintf(c.out, "%s:%s\n", c.out.String(target).Bold().String(), text)
}

// Reason describes why a command failed.
func Reason(outcome domain.Outcome) string {
	switch {
	case errors.Is(outcome.Err, domain.ErrOutputDirCreateFailed):
		return "could not create output directory"
	case errors.Is(outcome.Err, domain.ErrCommandSpawnFailed):
		return "could not start command"
	default:
		return outcome.Exit.String()
	}
}
