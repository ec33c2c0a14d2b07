package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/sob/internal/adapters/telemetry"
	"go.trai.ch/sob/internal/core/ports"
)

func TestOTelTracer_SpansCarryAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := telemetry.NewProvider(recorder)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	tracer := telemetry.NewOTelTracer(provider)

	ctx, root := tracer.Start(context.Background(), "build app", ports.WithAttribute("sob.targets", 2))
	_, child := tracer.Start(ctx, "main.o")
	child.SetAttribute("sob.command", "g++ -c main.cpp -o main.o")
	child.SetAttribute("sob.exit_code", 1)
	child.RecordError(errors.New("main.o: exit status 1"))
	child.End()
	root.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "main.o", ended[0].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "main.o: exit status 1", ended[0].Status().Description)
	assert.Contains(t, ended[0].Attributes(), attribute.String("sob.command", "g++ -c main.cpp -o main.o"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int("sob.exit_code", 1))

	assert.Equal(t, "build app", ended[1].Name())
	assert.Contains(t, ended[1].Attributes(), attribute.Int("sob.targets", 2))
}

func TestFrameRecorder_CapturesFirstFailure(t *testing.T) {
	frames := telemetry.NewFrameRecorder()
	provider := telemetry.NewProvider(frames)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	tracer := telemetry.NewOTelTracer(provider)

	ctx, build := tracer.Start(context.Background(), "build app")
	appCtx, app := tracer.Start(ctx, "app")
	_, ok := tracer.Start(appCtx, "util.o")
	_, bad := tracer.Start(appCtx, "main.o")

	ok.End()
	bad.SetAttribute("sob.kind", "compile")
	bad.RecordError(errors.New("main.o: exit status 1"))
	bad.End()
	app.RecordError(errors.New("app: dependency failed"))
	app.End()
	build.RecordError(errors.New("build failed"))
	build.End()

	got := frames.Frames()
	require.Len(t, got, 3)
	assert.Equal(t, "main.o", got[0].Name)
	assert.Equal(t, "main.o: exit status 1", got[0].Error)
	assert.Equal(t, []attribute.KeyValue{attribute.String("sob.kind", "compile")}, got[0].Attributes)
	assert.Equal(t, "app", got[1].Name)
	assert.Empty(t, got[1].Error)
	assert.Equal(t, "build app", got[2].Name)

	var buf bytes.Buffer
	require.NoError(t, frames.Dump(&buf))
	want := "frame stack of the first failure (innermost first):\n" +
		"  #0 main.o\n" +
		"       error: main.o: exit status 1\n" +
		"       sob.kind: compile\n" +
		"  #1 app\n" +
		"  #2 build app\n"
	assert.Equal(t, want, buf.String())
}

func TestFrameRecorder_NoFailure(t *testing.T) {
	frames := telemetry.NewFrameRecorder()
	provider := telemetry.NewProvider(frames)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := telemetry.NewOTelTracer(provider).Start(context.Background(), "build app")
	span.End()

	assert.Nil(t, frames.Frames())
	var buf bytes.Buffer
	require.NoError(t, frames.Dump(&buf))
	assert.Empty(t, buf.String())
}
