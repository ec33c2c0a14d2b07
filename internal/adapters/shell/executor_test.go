package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sob/internal/adapters/shell"
	"go.trai.ch/sob/internal/core/domain"
)

// lineLogger records the lines forwarded by the executor.
type lineLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *lineLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *lineLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *lineLogger) Error(error) {}

func shCommand(dir, script string) *domain.Command {
	return &domain.Command{
		Target: domain.NewIdentity("test"),
		Argv:   []string{"sh", "-c", script},
		Dir:    dir,
	}
}

func executors(log *lineLogger) map[string]*shell.Executor {
	return map[string]*shell.Executor{
		"pty":   shell.NewExecutor(log),
		"pipes": shell.NewExecutor(log, shell.WithoutPTY()),
	}
}

func TestExecutor_Execute_Success(t *testing.T) {
	for name, executor := range executors(&lineLogger{}) {
		t.Run(name, func(t *testing.T) {
			var stdout bytes.Buffer
			status, err := executor.Execute(context.Background(), shCommand(t.TempDir(), "echo line1; echo line2"), &stdout, io.Discard)
			require.NoError(t, err)
			assert.True(t, status.Success())
			assert.Contains(t, stdout.String(), "line1")
			assert.Contains(t, stdout.String(), "line2")
		})
	}
}

func TestExecutor_Execute_NonZeroExitIsNotAnError(t *testing.T) {
	for name, executor := range executors(&lineLogger{}) {
		t.Run(name, func(t *testing.T) {
			status, err := executor.Execute(context.Background(), shCommand(t.TempDir(), "exit 3"), io.Discard, io.Discard)
			require.NoError(t, err)
			assert.False(t, status.Success())
			assert.Equal(t, 3, status.Code)
		})
	}
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	executor := shell.NewExecutor(&lineLogger{}, shell.WithoutPTY())

	status, err := executor.Execute(context.Background(), shCommand(dir, "echo hi > out.txt"), io.Discard, io.Discard)
	require.NoError(t, err)
	require.True(t, status.Success())

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
}

func TestExecutor_Execute_ForwardsLinesToLogger(t *testing.T) {
	log := &lineLogger{}
	executor := shell.NewExecutor(log, shell.WithoutPTY())

	script := "printf part1; sleep 0.1; echo part2; echo warning: unused >&2; printf tail"
	status, err := executor.Execute(context.Background(), shCommand(t.TempDir(), script), io.Discard, io.Discard)
	require.NoError(t, err)
	require.True(t, status.Success())

	assert.Equal(t, []string{"part1part2", "tail"}, log.infos)
	assert.Equal(t, []string{"warning: unused"}, log.warns)
}

func TestExecutor_Execute_MissingProgram(t *testing.T) {
	executor := shell.NewExecutor(&lineLogger{})
	cmd := &domain.Command{Target: domain.NewIdentity("x"), Argv: []string{"definitely-not-a-compiler-sob"}}

	status, err := executor.Execute(context.Background(), cmd, io.Discard, io.Discard)
	require.ErrorIs(t, err, exec.ErrNotFound)
	assert.Equal(t, domain.AbnormalExitCode, status.Code)
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor(&lineLogger{})

	_, err := executor.Execute(context.Background(), &domain.Command{}, io.Discard, io.Discard)
	require.ErrorIs(t, err, shell.ErrEmptyCommand)
}

func TestExecutor_Execute_CustomEnvironment(t *testing.T) {
	binDir := t.TempDir()
	tool := filepath.Join(binDir, "fake-cc")
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\necho \"fake-cc $@\"\n"), 0o700))

	log := &lineLogger{}
	executor := shell.NewExecutor(log, shell.WithoutPTY(), shell.WithEnv([]string{"PATH=" + binDir}))
	cmd := &domain.Command{Target: domain.NewIdentity("main.o"), Argv: []string{"fake-cc", "-c", "main.cpp"}}

	var stdout bytes.Buffer
	status, err := executor.Execute(context.Background(), cmd, &stdout, io.Discard)
	require.NoError(t, err)
	require.True(t, status.Success())
	assert.Equal(t, "fake-cc -c main.cpp\n", stdout.String())
}

func TestExecutor_Execute_Cancelled(t *testing.T) {
	executor := shell.NewExecutor(&lineLogger{}, shell.WithoutPTY())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan domain.ExitStatus, 1)
	go func() {
		status, _ := executor.Execute(ctx, shCommand(t.TempDir(), "sleep 10"), io.Discard, io.Discard)
		done <- status
	}()
	cancel()

	status := <-done
	assert.False(t, status.Success())
}
