package ports

import "go.trai.ch/sob/internal/core/domain"

// Diagnostics receives progress notifications from the orchestrator.
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -source=diagnostics.go -destination=mocks/mock_diagnostics.go -package=mocks
type Diagnostics interface {
	// OnStart is called right before the command of a target is executed.
	OnStart(target, command string)
	// OnFinish is called after the command of a target has terminated or failed to start.
	OnFinish(target string, outcome domain.Outcome)
}
