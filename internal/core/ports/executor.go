// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/sob/internal/core/domain"
)

// Executor defines the process execution boundary.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and blocks until it terminates.
	//
	// A process that ran and exited is reported through the ExitStatus with a nil error,
	// whatever its code. The error is non-nil only when the process could not be
	// started or waited for.
	Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) (domain.ExitStatus, error)
}
