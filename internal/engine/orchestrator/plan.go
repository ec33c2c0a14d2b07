package orchestrator

import (
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/engine/synth"
)

// Plan validates the graph from every root and synthesizes the command of
// each reachable target in execution order. Targets shared between roots
// appear once. No process is started.
func Plan(g *domain.Graph, tc *domain.Toolchain, roots ...domain.Identity) ([]*domain.Command, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}
	for _, root := range roots {
		if err := g.Validate(root); err != nil {
			return nil, err
		}
	}

	seen := make(map[domain.Identity]bool)
	var commands []*domain.Command
	for _, root := range roots {
		for target := range g.Walk(root) {
			if seen[target.Name] {
				continue
			}
			seen[target.Name] = true

			cmd, err := synth.For(g, &target, tc)
			if err != nil {
				return nil, err
			}
			commands = append(commands, cmd)
		}
	}
	return commands, nil
}
