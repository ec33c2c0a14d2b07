package tui

import "go.trai.ch/sob/internal/core/domain"

// MsgStart reports that the command of a target started.
type MsgStart struct {
	Target  string
	Command string
}

// MsgOutput carries a chunk of a target's command output.
type MsgOutput struct {
	Target string
	Data   []byte
}

// MsgFinish reports how the command of a target finished.
type MsgFinish struct {
	Target  string
	Outcome domain.Outcome
}

// MsgDone reports that the build is over.
type MsgDone struct {
	Err error
}
