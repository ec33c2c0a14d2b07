package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/sob/internal/engine/synth"
	"go.trai.ch/zerr"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Jobs bounds the number of commands running at once.
	Jobs int
}

// Watch builds the requested targets, then rebuilds them in a fresh session
// every time a file below the project root changes. Build failures are
// reported and watching continues. It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context, targetNames []string, opts WatchOptions) error {
	project, err := a.load()
	if err != nil {
		return err
	}
	if _, err := project.Resolve(targetNames); err != nil {
		return err
	}

	w, err := a.watchers()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() {
		_ = w.Stop()
	}()

	if err := w.Start(ctx, project.Root, ignoreOutputs(project)); err != nil {
		return err
	}

	a.rebuild(ctx, targetNames, opts)
	a.logger.Info(fmt.Sprintf("watching %s for changes", project.Root))

	for batch := range w.Batches() {
		if ctx.Err() != nil {
			break
		}
		a.logger.Info(describeBatch(project.Root, batch))
		a.rebuild(ctx, targetNames, opts)
	}
	return nil
}

// rebuild reloads the project and builds it once. Errors are logged.
func (a *App) rebuild(ctx context.Context, targetNames []string, opts WatchOptions) {
	err := a.Build(ctx, targetNames, BuildOptions{Jobs: opts.Jobs})
	switch {
	case err == nil:
		a.logger.Info("build succeeded")
	case errors.Is(err, domain.ErrBuildExecutionFailed):
		a.logger.Warn("build failed, waiting for changes")
	case ctx.Err() != nil:
	default:
		a.logger.Error(err)
	}
}

// ignoreOutputs reports whether a path is produced by the build itself or
// belongs to sob's state directory.
func ignoreOutputs(project *domain.Project) func(string) bool {
	ignored := map[string]bool{
		filepath.Join(project.Root, domain.StateDirName): true,
	}
	var prefixes []string
	if prefix := project.Toolchain.BuildPrefix; prefix != "" {
		prefixes = append(prefixes, absolute(project.Root, prefix)+string(filepath.Separator))
		ignored[absolute(project.Root, prefix)] = true
	}
	prefixes = append(prefixes, filepath.Join(project.Root, domain.StateDirName)+string(filepath.Separator))

	for t := range project.Graph.Targets() {
		if artifact, err := synth.Artifact(&t, project.Toolchain); err == nil {
			ignored[absolute(project.Root, artifact)] = true
		}
	}

	return func(path string) bool {
		path = filepath.Clean(path)
		if ignored[path] {
			return true
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}
}

func absolute(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func describeBatch(root string, batch []ports.WatchEvent) string {
	if len(batch) == 1 {
		rel, err := filepath.Rel(root, batch[0].Path)
		if err != nil {
			rel = batch[0].Path
		}
		return fmt.Sprintf("%s: %s, rebuilding", rel, batch[0].Operation)
	}
	return fmt.Sprintf("%d files changed, rebuilding", len(batch))
}
