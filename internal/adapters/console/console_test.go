package console_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sob/internal/adapters/console"
	"go.trai.ch/sob/internal/core/domain"
)

func newConsole(t *testing.T) (*console.Console, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	return console.New(buf), buf
}

func TestConsole_Protocol(t *testing.T) {
	c, buf := newConsole(t)

	c.OnStart("main.o", "g++ -c main.cpp -o main.o")
	c.OnFinish("main.o", domain.Outcome{Status: domain.StatusSucceeded})
	c.OnStart("main", "g++ main.o -o main")
	c.OnFinish("main", domain.Outcome{
		Status: domain.StatusFailed,
		Exit:   domain.ExitStatus{Code: 1},
		Err:    domain.ErrCommandExited,
	})

	want := "main.o:g++ -c main.cpp -o main.o\n" +
		"main.o:finished\n" +
		"main:g++ main.o -o main\n" +
		"main:failed (exit status 1)\n"
	assert.Equal(t, want, buf.String())
}

func TestConsole_FailureReasons(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		want    string
	}{
		{
			name: "abnormal termination",
			outcome: domain.Outcome{
				Exit: domain.ExitStatus{Code: domain.AbnormalExitCode},
				Err:  domain.ErrCommandExited,
			},
			want: "x:failed (abnormal termination)\n",
		},
		{
			name: "spawn failure",
			outcome: domain.Outcome{
				Exit: domain.ExitStatus{Code: domain.AbnormalExitCode},
				Err:  errors.Join(domain.ErrCommandSpawnFailed, errors.New("not found")),
			},
			want: "x:failed (could not start command)\n",
		},
		{
			name: "output directory",
			outcome: domain.Outcome{
				Err: errors.Join(domain.ErrOutputDirCreateFailed, errors.New("denied")),
			},
			want: "x:failed (could not create output directory)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newConsole(t)
			tt.outcome.Status = domain.StatusFailed
			c.OnFinish("x", tt.outcome)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsole_ConcurrentLinesStayWhole(t *testing.T) {
	c, buf := newConsole(t)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			c.OnStart("t", "cc -c t.c -o t.o")
		})
	}
	wg.Wait()

	assert.Equal(t, bytes.Repeat([]byte("t:cc -c t.c -o t.o\n"), 20), buf.Bytes())
}
