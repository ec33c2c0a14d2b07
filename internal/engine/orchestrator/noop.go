package orchestrator

import (
	"context"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
)

type noopDiagnostics struct{}

func (noopDiagnostics) OnStart(string, string) {}

func (noopDiagnostics) OnFinish(string, domain.Outcome) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End() {}

func (noopSpan) RecordError(error) {}

func (noopSpan) SetAttribute(string, any) {}
