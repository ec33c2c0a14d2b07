package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sob/internal/adapters/console"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
)

var _ ports.Diagnostics = (*Renderer)(nil)

// Renderer runs the progress view as a Diagnostics sink. It also keeps the
// output of every command so failures can be printed after the view closes.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error

	mu       sync.Mutex
	logs     map[string]*bytes.Buffer
	failures []string
	outcomes map[string]domain.Outcome
}

// NewRenderer creates a renderer listing targets in execution order.
func NewRenderer(targets []string, opts ...tea.ProgramOption) *Renderer {
	model := NewModel(targets)
	return &Renderer{
		program:  tea.NewProgram(model, opts...),
		model:    model,
		errCh:    make(chan error, 1),
		logs:     make(map[string]*bytes.Buffer),
		outcomes: make(map[string]domain.Outcome),
	}
}

// Start launches the view in a background goroutine. onExit is called once
// the view has closed, whether the build is over or the user quit.
func (r *Renderer) Start(onExit context.CancelFunc) {
	go func() {
		_, err := r.program.Run()
		if onExit != nil {
			onExit()
		}
		r.errCh <- err
	}()
}

// Finish tells the view the build is over. The view closes itself.
func (r *Renderer) Finish(err error) {
	r.program.Send(MsgDone{Err: err})
}

// Wait blocks until the view has closed.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnStart forwards the start of a command to the view.
func (r *Renderer) OnStart(target, command string) {
	r.mu.Lock()
	r.logs[target] = new(bytes.Buffer)
	r.mu.Unlock()

	r.program.Send(MsgStart{Target: target, Command: command})
}

// OnFinish forwards the outcome of a command to the view.
func (r *Renderer) OnFinish(target string, outcome domain.Outcome) {
	r.mu.Lock()
	r.outcomes[target] = outcome
	if outcome.Status == domain.StatusFailed {
		r.failures = append(r.failures, target)
	}
	r.mu.Unlock()

	r.program.Send(MsgFinish{Target: target, Outcome: outcome})
}

// Output returns the writer that receives the command output of target.
func (r *Renderer) Output(target string) io.Writer {
	return &targetWriter{renderer: r, target: target}
}

// Summary writes every failed target in console format, followed by its output.
func (r *Renderer) Summary(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, target := range slices.Sorted(slices.Values(r.failures)) {
		if _, err := fmt.Fprintf(w, "%s:failed (%s)\n", target, console.Reason(r.outcomes[target])); err != nil {
			return err
		}
		if log := r.logs[target]; log != nil && log.Len() > 0 {
			if _, err := w.Write(log.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

type targetWriter struct {
	renderer *Renderer
	target   string
}

func (w *targetWriter) Write(p []byte) (int, error) {
	r := w.renderer
	r.mu.Lock()
	if log, ok := r.logs[w.target]; ok {
		log.Write(p)
	}
	r.mu.Unlock()

	r.program.Send(MsgOutput{Target: w.target, Data: bytes.Clone(p)})
	return len(p), nil
}
