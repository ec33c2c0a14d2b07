// Package app implements the application layer for sob.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sob/internal/adapters/cas"
	"go.trai.ch/sob/internal/adapters/telemetry"
	"go.trai.ch/sob/internal/adapters/tui"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/sob/internal/engine/orchestrator"
	"go.trai.ch/sob/internal/ui/output"
	"go.trai.ch/zerr"
)

// Components holds everything main needs to run the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator *orchestrator.Orchestrator
	store        ports.BuildRecordStore
	logger       ports.Logger
	diagnostics  ports.Diagnostics
	watchers     ports.WatcherFactory
	stdout       io.Writer
	stderr       io.Writer
	workDir      string
	teaOptions   []tea.ProgramOption
	isTerminal   func(w io.Writer) bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orch *orchestrator.Orchestrator,
	store ports.BuildRecordStore,
	log ports.Logger,
	diagnostics ports.Diagnostics,
	watchers ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		orchestrator: orch,
		store:        store,
		logger:       log,
		diagnostics:  diagnostics,
		watchers:     watchers,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		isTerminal:   output.IsTerminal,
	}
}

// WithOutput redirects the reports of the App. Compiler output goes to the logger.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWorkDir makes the App look for sob.yaml from dir instead of the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithTeaOptions adds bubbletea program options to the progress view.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Jobs bounds the number of commands running at once.
	Jobs int
	// Trace dumps the frame stack of the first failure.
	Trace bool
	// NoRecord disables the build record store.
	NoRecord bool
	// TUI shows the interactive progress view instead of console lines
	// when stderr is a terminal.
	TUI bool
}

// Build builds the requested targets, or the default target when none is given.
func (a *App) Build(ctx context.Context, targetNames []string, opts BuildOptions) error {
	project, err := a.load()
	if err != nil {
		return err
	}
	roots, err := project.Resolve(targetNames)
	if err != nil {
		return err
	}
	return a.build(ctx, project, roots, opts)
}

func (a *App) build(ctx context.Context, project *domain.Project, roots []domain.Identity, opts BuildOptions) error {
	var view *tui.Renderer
	sinks := multiSink{}
	if opts.TUI && a.isTerminal(a.stderr) {
		commands, err := orchestrator.Plan(project.Graph, project.Toolchain, roots...)
		if err != nil {
			return err
		}
		view = a.newView(commands)
		sinks = append(sinks, view)
	} else {
		if opts.TUI {
			a.logger.Warn("stderr is not a terminal, falling back to plain output")
		}
		sinks = append(sinks, a.diagnostics)
	}
	if !opts.NoRecord {
		sinks = append(sinks, cas.NewRecorder(a.store, a.logger, project.Root))
	}

	sessionOpts := orchestrator.SessionOptions{
		Diagnostics: sinks,
		Parallelism: opts.Jobs,
		WorkDir:     project.Root,
	}
	if view != nil {
		sessionOpts.TargetOutput = view.Output
	}

	var frames *telemetry.FrameRecorder
	if opts.Trace {
		frames = telemetry.NewFrameRecorder()
		provider := telemetry.NewProvider(frames)
		defer func() {
			_ = provider.Shutdown(context.WithoutCancel(ctx))
		}()
		sessionOpts.Tracer = telemetry.NewOTelTracer(provider)
	}

	session, err := a.orchestrator.NewSession(project.Graph, project.Toolchain, sessionOpts)
	if err != nil {
		return err
	}

	if view != nil {
		// Quitting the view cancels the build.
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		view.Start(cancel)

		restore := a.silenceLogger()
		err = session.Build(ctx, roots...)
		view.Finish(err)
		if werr := view.Wait(); werr != nil && !errors.Is(werr, tea.ErrProgramKilled) {
			a.logger.Warn("progress view failed: " + werr.Error())
		}
		restore()
		_ = view.Summary(a.stderr)
	} else {
		err = session.Build(ctx, roots...)
	}

	if err != nil {
		if frames != nil {
			_ = frames.Dump(a.stderr)
		}
		if isExecutionFailure(err) {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return err
	}
	return nil
}

func (a *App) newView(commands []*domain.Command) *tui.Renderer {
	targets := make([]string, len(commands))
	for i, cmd := range commands {
		targets[i] = cmd.Target.String()
	}
	opts := append([]tea.ProgramOption{tea.WithOutput(a.stderr), tea.WithAltScreen()}, a.teaOptions...)
	return tui.NewRenderer(targets, opts...)
}

// silenceLogger stops log output from drawing over the progress view.
func (a *App) silenceLogger() (restore func()) {
	l, ok := a.logger.(interface{ SetOutput(w io.Writer) })
	if !ok {
		return func() {}
	}
	l.SetOutput(io.Discard)
	return func() { l.SetOutput(nil) }
}

// isExecutionFailure reports whether err was already reported by the diagnostics sink.
func isExecutionFailure(err error) bool {
	return errors.Is(err, domain.ErrCommandExecutionFailed) || errors.Is(err, domain.ErrOutputDirCreateFailed)
}

func (a *App) load() (*domain.Project, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}
	return a.configLoader.Load(dir)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}

// multiSink fans diagnostics out to several sinks in order.
type multiSink []ports.Diagnostics

func (m multiSink) OnStart(target, command string) {
	for _, sink := range m {
		sink.OnStart(target, command)
	}
}

func (m multiSink) OnFinish(target string, outcome domain.Outcome) {
	for _, sink := range m {
		sink.OnFinish(target, outcome)
	}
}
