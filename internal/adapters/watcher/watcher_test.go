package watcher_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sob/internal/adapters/logger"
	"go.trai.ch/sob/internal/adapters/watcher"
	"go.trai.ch/sob/internal/core/ports"
)

func collect(w *watcher.Watcher) <-chan []ports.WatchEvent {
	out := make(chan []ports.WatchEvent, 16)
	go func() {
		defer close(out)
		for batch := range w.Batches() {
			out <- batch
		}
	}()
	return out
}

func waitFor(t *testing.T, batches <-chan []ports.WatchEvent, path string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch, ok := <-batches:
			require.True(t, ok, "watcher stopped before %s was reported", path)
			for _, event := range batch {
				if event.Path == path {
					return
				}
			}
		case <-deadline:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0o750))

	w, err := watcher.NewWatcher(logger.New(logger.WithOutput(io.Discard)), 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root, nil))
	batches := collect(w)

	source := filepath.Join(root, "src", "main.c")
	require.NoError(t, os.WriteFile(source, []byte("int main(void) { return 0; }\n"), 0o600))
	waitFor(t, batches, source)

	// Directories created after Start are watched too.
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.Mkdir(nested, 0o750))
	waitFor(t, batches, nested)

	time.Sleep(50 * time.Millisecond)
	header := filepath.Join(nested, "lib.h")
	require.NoError(t, os.WriteFile(header, []byte("#pragma once\n"), 0o600))
	waitFor(t, batches, header)

	require.NoError(t, w.Stop())
	for range batches {
	}
}

func TestWatcher_IgnoresPaths(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build")
	require.NoError(t, os.Mkdir(out, 0o750))

	w, err := watcher.NewWatcher(logger.New(logger.WithOutput(io.Discard)), 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ignore := func(path string) bool {
		return path == out || strings.HasPrefix(path, out+string(filepath.Separator))
	}
	require.NoError(t, w.Start(ctx, root, ignore))
	batches := collect(w)

	require.NoError(t, os.WriteFile(filepath.Join(out, "main.o"), nil, 0o600))
	source := filepath.Join(root, "main.c")
	require.NoError(t, os.WriteFile(source, nil, 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-batches:
			seen := false
			for _, event := range batch {
				assert.False(t, ignore(event.Path), "ignored path reported: %s", event.Path)
				seen = seen || event.Path == source
			}
			if seen {
				cancel()
				for range batches {
				}
				require.NoError(t, w.Stop())
				return
			}
		case <-deadline:
			t.Fatal("no event for main.c")
		}
	}
}

func TestWatcher_StopClosesBatches(t *testing.T) {
	w, err := watcher.NewWatcher(logger.New(logger.WithOutput(io.Discard)), 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), t.TempDir(), nil))

	batches := collect(w)
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-batches:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("batches not closed after Stop")
	}
}
