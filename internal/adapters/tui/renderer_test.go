package tui_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sob/internal/adapters/tui"
	"go.trai.ch/sob/internal/core/domain"
)

func headless() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	}
}

func TestRenderer_Lifecycle(t *testing.T) {
	r := tui.NewRenderer([]string{"main.o", "app"}, headless()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(cancel)

	r.OnStart("main.o", "cc -c main.c -o main.o")
	_, err := r.Output("main.o").Write([]byte("main.c:3: error: expected ';'\n"))
	require.NoError(t, err)
	r.OnFinish("main.o", domain.Outcome{
		Status: domain.StatusFailed,
		Exit:   domain.ExitStatus{Code: 1},
		Err:    domain.ErrCommandExited,
	})
	r.Finish(errors.New("build failed"))

	done := make(chan error, 1)
	go func() { done <- r.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("renderer did not stop")
	}
	assert.Error(t, ctx.Err(), "closing the view runs onExit")

	var out bytes.Buffer
	require.NoError(t, r.Summary(&out))
	assert.Equal(t, "main.o:failed (exit status 1)\nmain.c:3: error: expected ';'\n", out.String())
}

func TestRenderer_SummaryWithoutFailures(t *testing.T) {
	r := tui.NewRenderer([]string{"main.o"}, headless()...)
	r.Start(nil)

	r.OnStart("main.o", "cc -c main.c -o main.o")
	r.OnFinish("main.o", domain.Outcome{Status: domain.StatusSucceeded})
	r.Finish(nil)
	require.NoError(t, r.Wait())

	var out bytes.Buffer
	require.NoError(t, r.Summary(&out))
	assert.Empty(t, out.String())
}
