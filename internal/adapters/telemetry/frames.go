package telemetry

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

var _ sdktrace.SpanProcessor = (*FrameRecorder)(nil)

// Frame is one entry of a frame stack.
type Frame struct {
	Name       string
	Attributes []attribute.KeyValue
	// Error is set on the frame that failed.
	Error string
}

// FrameRecorder is a span processor that tracks open spans and, when the
// first span fails, snapshots the chain of frames from it up to the root.
type FrameRecorder struct {
	mu     sync.Mutex
	open   map[trace.SpanID]sdktrace.ReadWriteSpan
	failed []Frame
}

// NewFrameRecorder creates a new FrameRecorder.
func NewFrameRecorder() *FrameRecorder {
	return &FrameRecorder{open: make(map[trace.SpanID]sdktrace.ReadWriteSpan)}
}

// OnStart registers the span as an open frame.
func (r *FrameRecorder) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.open[sc.SpanID()] = s
}

// OnEnd closes the frame and captures the stack of the first failing span.
func (r *FrameRecorder) OnEnd(s sdktrace.ReadOnlySpan) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.open, s.SpanContext().SpanID())
	if r.failed != nil || s.Status().Code != codes.Error {
		return
	}

	frame := frameOf(s)
	frame.Error = s.Status().Description
	frames := []Frame{frame}

	for parent := s.Parent(); parent.IsValid(); {
		p, ok := r.open[parent.SpanID()]
		if !ok {
			break
		}
		frames = append(frames, frameOf(p))
		parent = p.Parent()
	}
	r.failed = frames
}

// Frames returns the captured stack, innermost first, or nil when nothing failed.
func (r *FrameRecorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.failed)
}

// Dump writes the captured stack to w. It writes nothing when nothing failed.
func (r *FrameRecorder) Dump(w io.Writer) error {
	frames := r.Frames()
	if len(frames) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("frame stack of the first failure (innermost first):\n")
	for i, f := range frames {
		fmt.Fprintf(&b, "  #%d %s\n", i, f.Name)
		if f.Error != "" {
			fmt.Fprintf(&b, "       error: %s\n", f.Error)
		}
		for _, kv := range f.Attributes {
			fmt.Fprintf(&b, "       %s: %s\n", kv.Key, kv.Value.Emit())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ForceFlush does nothing.
func (r *FrameRecorder) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (r *FrameRecorder) Shutdown(_ context.Context) error {
	return nil
}

func frameOf(s sdktrace.ReadOnlySpan) Frame {
	attrs := slices.Clone(s.Attributes())
	slices.SortFunc(attrs, func(a, b attribute.KeyValue) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return Frame{Name: s.Name(), Attributes: attrs}
}
