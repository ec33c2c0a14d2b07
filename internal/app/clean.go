package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/sob/internal/engine/synth"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Records removes the build record store.
	Records bool
	// Artifacts removes every object file and binary the project declares.
	Artifacts bool
}

// Clean removes build records and artifacts based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	var errs error

	if options.Artifacts {
		removed := 0
		for t := range project.Graph.Targets() {
			artifact, err := synth.Artifact(&t, project.Toolchain)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			path := artifact
			if !filepath.IsAbs(path) {
				path = filepath.Join(project.Root, path)
			}
			if err := os.Remove(path); err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove artifact"), "path", artifact))
				}
				continue
			}
			removed++
		}
		a.logger.Info(fmt.Sprintf("removed %d artifacts", removed))
	}

	if options.Records {
		a.logger.Info("removing build records...")
		if err := a.store.Clear(project.Root); err != nil {
			errs = errors.Join(errs, err)
		} else {
			a.logger.Info("removed build records")
		}
	}

	return errs
}
