// Package shell provides the process executor that runs compiler and linker commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// ErrEmptyCommand is returned when a command has no program to run.
var ErrEmptyCommand = zerr.New("empty command")

// Executor implements ports.Executor using os/exec and pty.
// Commands run in a pseudo-terminal when one can be allocated so that
// compilers keep their colored diagnostics, and on plain pipes otherwise.
type Executor struct {
	logger ports.Logger
	env    []string
	noPTY  bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithoutPTY forces commands to run on plain pipes.
func WithoutPTY() Option {
	return func(e *Executor) {
		e.noPTY = true
	}
}

// WithEnv replaces the environment commands inherit. It defaults to os.Environ().
func WithEnv(env []string) Option {
	return func(e *Executor) {
		e.env = env
	}
}

// NewExecutor creates a new Executor that forwards command output lines to logger.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger: logger,
		env:    os.Environ(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) (domain.ExitStatus, error) {
	abnormal := domain.ExitStatus{Code: domain.AbnormalExitCode}
	if len(cmd.Argv) == 0 {
		return abnormal, zerr.With(zerr.Wrap(ErrEmptyCommand, "invalid command"), "target", cmd.Target.String())
	}

	name := cmd.Argv[0]
	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		lp, err := lookPath(name, e.env)
		if err != nil {
			return abnormal, zerr.With(zerr.Wrap(err, "failed to find executable"), "program", name)
		}
		executable = lp
	}

	stdoutLog := &logWriter{logger: e.logger, level: "info"}
	stderrLog := &logWriter{logger: e.logger, level: "warn"}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	proc, err := e.start(ctx, executable, cmd, io.MultiWriter(stdoutLog, stdout), io.MultiWriter(stderrLog, stderr))
	if err != nil {
		return abnormal, err
	}

	if err := proc.wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.ExitStatus{Code: exitErr.ExitCode()}, nil
		}
		return abnormal, zerr.Wrap(err, "failed to wait for command")
	}
	return domain.ExitStatus{}, nil
}

type process struct {
	cmd    *exec.Cmd
	ioDone <-chan struct{}
}

func (p *process) wait() error {
	err := p.cmd.Wait()
	if p.ioDone != nil {
		<-p.ioDone
	}
	return err
}

func (e *Executor) command(ctx context.Context, executable string, cmd *domain.Command) *exec.Cmd {
	c := exec.CommandContext(ctx, executable, cmd.Argv[1:]...) //nolint:gosec // commands come from the project file
	c.Args[0] = cmd.Argv[0]
	c.Dir = cmd.Dir
	c.Env = e.env
	return c
}

// start launches the command in a PTY, falling back to pipes when no PTY is available.
func (e *Executor) start(ctx context.Context, executable string, cmd *domain.Command, stdout, stderr io.Writer) (*process, error) {
	if !e.noPTY {
		c := e.command(ctx, executable, cmd)
		ptmx, err := pty.Start(c)
		if err == nil {
			ioDone := make(chan struct{})
			go func() {
				defer close(ioDone)
				defer func() { _ = ptmx.Close() }()
				// A PTY merges stdout and stderr.
				_, _ = io.Copy(stdout, ptmx)
			}()
			return &process{cmd: c, ioDone: ioDone}, nil
		}
	}

	c := e.command(ctx, executable, cmd)
	mu := &sync.Mutex{}
	c.Stdout = &lockedWriter{mu: mu, w: stdout}
	c.Stderr = &lockedWriter{mu: mu, w: stderr}
	if err := c.Start(); err != nil {
		return nil, zerr.Wrap(err, "failed to start command")
	}
	return &process{cmd: c}, nil
}

// lockedWriter serializes writes from the stdout and stderr copy goroutines.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type logWriter struct {
	mu     sync.Mutex
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	if w.logger == nil {
		return
	}
	// PTYs may introduce \r. Remove it.
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
