// Package orchestrator drives the build of a target graph: it validates and
// plans the graph, then executes each command once, dependencies first.
package orchestrator

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// errAbandoned marks a target whose command never started because the build was cancelled.
var errAbandoned = zerr.New("build cancelled before the command started")

// Orchestrator creates build sessions that share one executor and one directory maker.
type Orchestrator struct {
	executor ports.Executor
	dirs     ports.DirMaker
}

// New creates a new Orchestrator.
func New(executor ports.Executor, dirs ports.DirMaker) *Orchestrator {
	return &Orchestrator{
		executor: executor,
		dirs:     dirs,
	}
}

// SessionOptions configures a build session.
type SessionOptions struct {
	// Diagnostics receives start and finish notifications. Nil discards them.
	Diagnostics ports.Diagnostics
	// Tracer opens one span per target. Nil disables tracing.
	Tracer ports.Tracer
	// Parallelism bounds the number of commands running at once.
	// Values below 2 build strictly sequentially in declared order.
	Parallelism int
	// Stdout and Stderr receive the output of every command. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
	// TargetOutput, when set, returns an extra writer that receives both
	// output streams of the given target's command.
	TargetOutput func(target string) io.Writer
	// WorkDir is the directory commands run in. Relative output directories
	// are created below it. Empty means the current directory.
	WorkDir string
}

// Session is one build over a graph and a toolchain. Its BuildCache lives as
// long as the session: a target that succeeded is never rebuilt by the same session.
type Session struct {
	orchestrator *Orchestrator
	graph        *domain.Graph
	toolchain    *domain.Toolchain
	opts         SessionOptions
	cache        *BuildCache
	sem          *semaphore.Weighted

	mu       sync.RWMutex
	commands map[domain.Identity]*domain.Command
}

// NewSession validates the toolchain and creates a session with an empty BuildCache.
func (o *Orchestrator) NewSession(g *domain.Graph, tc *domain.Toolchain, opts SessionOptions) (*Session, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = noopDiagnostics{}
	}
	if opts.Tracer == nil {
		opts.Tracer = noopTracer{}
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	s := &Session{
		orchestrator: o,
		graph:        g,
		toolchain:    tc.Clone(),
		opts:         opts,
		cache:        NewBuildCache(),
		commands:     make(map[domain.Identity]*domain.Command),
	}
	if opts.Parallelism > 1 {
		s.sem = semaphore.NewWeighted(int64(opts.Parallelism))
	}
	return s, nil
}

// Status returns the status of a target in this session.
func (s *Session) Status(id domain.Identity) domain.BuildStatus {
	return s.cache.Status(id)
}

// Build builds every root and its transitive dependencies.
// The whole reachable graph is validated and every command synthesized before
// the first process starts. The first failure stops the build.
func (s *Session) Build(ctx context.Context, roots ...domain.Identity) error {
	commands, err := Plan(s.graph, s.toolchain, roots...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for _, cmd := range commands {
		s.commands[cmd.Target] = s.anchor(cmd)
	}
	s.mu.Unlock()

	ctx, span := s.opts.Tracer.Start(ctx, "build "+strings.Join(domain.Strings(roots), " "),
		ports.WithAttribute("sob.targets", len(commands)))
	defer span.End()

	run := &run{session: s, execCtx: ctx}
	if err := run.buildAll(ctx, roots, nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// anchor places a command in the session's working directory.
func (s *Session) anchor(cmd *domain.Command) *domain.Command {
	if s.opts.WorkDir == "" {
		return cmd
	}
	cmd.Dir = s.opts.WorkDir
	for i, dir := range cmd.Dirs {
		if !filepath.IsAbs(dir) {
			cmd.Dirs[i] = filepath.Join(s.opts.WorkDir, dir)
		}
	}
	return cmd
}

// run holds the state of one Build call.
type run struct {
	session *Session
	// execCtx is the caller's context. Commands run under it so that a failing
	// sibling never interrupts a process that already started.
	execCtx context.Context
}

// buildAll builds ids in declared order, or concurrently when the session is parallel.
func (r *run) buildAll(ctx context.Context, ids []domain.Identity, path []domain.Identity) error {
	if r.session.sem == nil || len(ids) < 2 {
		for _, id := range ids {
			if err := r.build(ctx, id, path); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			return r.build(gctx, id, path)
		})
	}
	return g.Wait()
}

// build brings one target to a terminal state. path lists the targets whose
// builds are waiting on this one, outermost first.
func (r *run) build(ctx context.Context, id domain.Identity, path []domain.Identity) error {
	if slices.Contains(path, id) {
		return domain.CycleError(path, id)
	}

	s := r.session
	e, owner := s.cache.acquire(id)
	if !owner {
		return r.await(ctx, e)
	}

	path = append(slices.Clone(path), id)
	ctx, span := s.opts.Tracer.Start(ctx, id.String())
	defer span.End()

	target, _ := s.graph.GetTarget(id)
	if err := r.buildAll(ctx, target.Dependencies, path); err != nil {
		if errors.Is(err, errAbandoned) {
			// A dependency that failed outranks siblings cancelled because of it.
			failed := s.cache.settledFailure(target.Dependencies)
			if failed == nil {
				s.cache.abandon(id, e, err)
				return err
			}
			err = failed
		}
		span.RecordError(err)
		s.cache.finish(e, domain.StatusFailed, err)
		return err
	}

	err := r.execute(ctx, span, id, path)
	switch {
	case errors.Is(err, errAbandoned):
		s.cache.abandon(id, e, err)
	case err != nil:
		span.RecordError(err)
		s.cache.finish(e, domain.StatusFailed, err)
	default:
		s.cache.finish(e, domain.StatusSucceeded, nil)
	}
	return err
}

// await waits for a target owned by another caller.
func (r *run) await(ctx context.Context, e *entry) error {
	status, err := r.session.cache.result(e)
	switch status {
	case domain.StatusSucceeded:
		return nil
	case domain.StatusFailed:
		return err
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return abandoned(ctx)
	}

	status, err = r.session.cache.result(e)
	if status == domain.StatusSucceeded {
		return nil
	}
	return err
}

// execute runs the command of a target whose dependencies all succeeded.
func (r *run) execute(ctx context.Context, span ports.Span, id domain.Identity, path []domain.Identity) error {
	s := r.session

	s.mu.RLock()
	cmd := s.commands[id]
	s.mu.RUnlock()

	span.SetAttribute("sob.kind", cmd.Kind.String())
	span.SetAttribute("sob.output", cmd.Output)
	span.SetAttribute("sob.command", cmd.Text())

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return abandoned(ctx)
		}
		defer s.sem.Release(1)
	}
	if err := ctx.Err(); err != nil {
		return abandoned(ctx)
	}

	execCtx, cancel := detach(r.execCtx, ctx)
	defer cancel()

	s.opts.Diagnostics.OnStart(id.String(), cmd.Text())
	start := time.Now()

	outcome := domain.Outcome{Status: domain.StatusSucceeded}
	for _, dir := range cmd.Dirs {
		if err := s.orchestrator.dirs.EnsureDir(dir); err != nil {
			outcome.Err = zerr.With(zerr.Wrap(errors.Join(domain.ErrOutputDirCreateFailed, err), id.String()), "dir", dir)
			break
		}
	}

	if outcome.Err == nil {
		stdout, stderr := s.opts.Stdout, s.opts.Stderr
		if s.opts.TargetOutput != nil {
			w := s.opts.TargetOutput(id.String())
			stdout, stderr = io.MultiWriter(stdout, w), io.MultiWriter(stderr, w)
		}
		exit, err := s.orchestrator.executor.Execute(execCtx, cmd, stdout, stderr)
		outcome.Exit = exit
		span.SetAttribute("sob.exit_code", exit.Code)
		switch {
		case err != nil:
			outcome.Err = zerr.Wrap(errors.Join(domain.ErrCommandSpawnFailed, err), id.String())
		case !exit.Success():
			outcome.Err = zerr.With(zerr.Wrap(domain.ErrCommandExited, id.String()+": "+exit.String()), "exit_code", exit.Code)
		}
	}

	outcome.Duration = time.Since(start)
	if outcome.Err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = zerr.With(zerr.With(outcome.Err, "target", id.String()), "chain", chain(path))
	}
	s.opts.Diagnostics.OnFinish(id.String(), outcome)

	return outcome.Err
}

func abandoned(ctx context.Context) error {
	return errors.Join(errAbandoned, context.Cause(ctx))
}

// detach returns a context that carries the values of scope but is cancelled
// only together with parent.
func detach(parent, scope context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(context.WithoutCancel(scope))
	stop := context.AfterFunc(parent, func() {
		cancel(context.Cause(parent))
	})
	return ctx, func() {
		stop()
		cancel(nil)
	}
}

func chain(path []domain.Identity) string {
	return strings.Join(domain.Strings(path), " -> ")
}
