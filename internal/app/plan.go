package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/engine/orchestrator"
)

// Plan prints the commands a build of the requested targets would run, in
// execution order, without running them. Output directories are printed as
// mkdir lines right before the first command that needs them.
func (a *App) Plan(_ context.Context, targetNames []string) error {
	project, err := a.load()
	if err != nil {
		return err
	}
	roots, err := project.Resolve(targetNames)
	if err != nil {
		return err
	}

	commands, err := orchestrator.Plan(project.Graph, project.Toolchain, roots...)
	if err != nil {
		return err
	}

	made := make(map[string]bool)
	for _, cmd := range commands {
		for _, dir := range cmd.Dirs {
			if !made[dir] {
				made[dir] = true
				a.printf("mkdir -p %s\n", dir)
			}
		}
		a.printf("%s\n", cmd.Text())
	}
	return nil
}

// Check validates the whole project, including targets no root reaches, and
// synthesizes every command.
func (a *App) Check(_ context.Context) error {
	project, err := a.load()
	if err != nil {
		return err
	}
	if err := project.Graph.ValidateAll(); err != nil {
		return err
	}
	roots := project.Graph.Roots()
	if len(roots) == 0 {
		// An empty project still needs a usable toolchain.
		if err := project.Toolchain.Validate(); err != nil {
			return err
		}
	} else if _, err := orchestrator.Plan(project.Graph, project.Toolchain, roots...); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s is valid: %d targets, %d roots", domain.ProjectFileName,
		project.Graph.TargetCount(), len(roots)))
	return nil
}

// Graph prints the dependency tree of the requested targets, or of every root
// when none is given. A target already printed is marked with (*) and not expanded again.
func (a *App) Graph(_ context.Context, targetNames []string) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	roots := project.Graph.Roots()
	if len(targetNames) > 0 {
		roots = domain.NewIdentities(targetNames)
	}
	for _, root := range roots {
		if err := project.Graph.Validate(root); err != nil {
			return err
		}
	}

	var sb strings.Builder
	expanded := make(map[domain.Identity]bool)
	for _, root := range roots {
		writeTree(&sb, project.Graph, root, "", "", expanded)
	}
	a.printf("%s", sb.String())
	return nil
}

func writeTree(sb *strings.Builder, g *domain.Graph, id domain.Identity, prefix, childPrefix string, expanded map[domain.Identity]bool) {
	t, _ := g.GetTarget(id)
	sb.WriteString(prefix)
	sb.WriteString(describe(&t))
	if expanded[id] && len(t.Dependencies) > 0 {
		sb.WriteString(" (*)\n")
		return
	}
	sb.WriteString("\n")
	expanded[id] = true

	for i, dep := range t.Dependencies {
		if i == len(t.Dependencies)-1 {
			writeTree(sb, g, dep, childPrefix+"└── ", childPrefix+"    ", expanded)
		} else {
			writeTree(sb, g, dep, childPrefix+"├── ", childPrefix+"│   ", expanded)
		}
	}
}

func describe(t *domain.Target) string {
	kind, _ := t.Kind()
	if kind == domain.KindLink {
		return fmt.Sprintf("%s (%s → %s)", t.Name, kind, t.Output)
	}
	return fmt.Sprintf("%s (%s ← %s)", t.Name, kind, t.Source)
}
