package domain

import (
	"fmt"
	"strings"
	"time"
)

// BuildStatus represents the lifecycle state of a target within one build session.
type BuildStatus int

const (
	// StatusNotStarted indicates the target has not been visited.
	StatusNotStarted BuildStatus = iota
	// StatusInProgress indicates the target is being built.
	StatusInProgress
	// StatusSucceeded indicates the target's command exited successfully.
	StatusSucceeded
	// StatusFailed indicates the target or one of its dependencies failed.
	StatusFailed
)

// String returns the string representation of the BuildStatus.
func (s BuildStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "not-started"
	}
}

// IsTerminal reports whether the status can no longer change within a session.
func (s BuildStatus) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// AbnormalExitCode is reported when a process did not exit normally, e.g. it was killed by a signal.
const AbnormalExitCode = -1

// ExitStatus is the result of a finished external process.
type ExitStatus struct {
	Code int
}

// Success reports whether the process exited with code zero.
func (e ExitStatus) Success() bool {
	return e.Code == 0
}

// String returns the string representation of the ExitStatus.
func (e ExitStatus) String() string {
	if e.Code == AbnormalExitCode {
		return "abnormal termination"
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Command is a fully synthesized external command for one target.
type Command struct {
	Target Identity
	Kind   Kind
	// Argv is the program followed by its arguments.
	Argv []string
	// Output is the artifact the command produces.
	Output string
	// Dirs must exist before the command runs.
	Dirs []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Text returns the command as one space-separated line.
func (c *Command) Text() string {
	return strings.Join(c.Argv, " ")
}

// Outcome describes how the command of one target finished.
type Outcome struct {
	Status   BuildStatus
	Exit     ExitStatus
	Duration time.Duration
	Err      error
}

// BuildRecord is the persisted summary of the last execution of a target.
type BuildRecord struct {
	Target    string        `json:"target,omitzero"`
	Command   string        `json:"command,omitzero"`
	Status    string        `json:"status,omitzero"`
	ExitCode  int           `json:"exit_code"`
	Duration  time.Duration `json:"duration,omitzero"`
	Timestamp time.Time     `json:"timestamp,omitzero"`
	Error     string        `json:"error,omitzero"`
}

// Project is a loaded build description.
type Project struct {
	// Root is the absolute directory commands run in.
	Root      string
	Toolchain *Toolchain
	Graph     *Graph
	// Default is built when no target is requested. It may be zero.
	Default Identity
}

// Resolve maps requested target names to identities, falling back to the default target.
func (p *Project) Resolve(names []string) ([]Identity, error) {
	if len(names) == 0 {
		if p.Default.IsZero() {
			return nil, ErrNoTargetsSpecified
		}
		return []Identity{p.Default}, nil
	}
	ids := NewIdentities(names)
	for _, id := range ids {
		if _, ok := p.Graph.GetTarget(id); !ok {
			return nil, targetNotFound(id)
		}
	}
	return ids, nil
}
