package cas

import (
	"sync"
	"time"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Diagnostics = (*Recorder)(nil)

// Recorder is a Diagnostics sink that persists a BuildRecord for every
// finished command. Store failures are logged and never fail the build.
type Recorder struct {
	store  ports.BuildRecordStore
	logger ports.Logger
	root   string
	now    func() time.Time

	mu       sync.Mutex
	commands map[string]string
}

// NewRecorder creates a Recorder writing the records of the project at root.
func NewRecorder(store ports.BuildRecordStore, logger ports.Logger, root string) *Recorder {
	return &Recorder{
		store:    store,
		logger:   logger,
		root:     root,
		now:      time.Now,
		commands: make(map[string]string),
	}
}

// OnStart remembers the command of the target.
func (r *Recorder) OnStart(target, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[target] = command
}

// OnFinish stores the record of the target.
func (r *Recorder) OnFinish(target string, outcome domain.Outcome) {
	r.mu.Lock()
	command := r.commands[target]
	delete(r.commands, target)
	r.mu.Unlock()

	record := domain.BuildRecord{
		Target:    target,
		Command:   command,
		Status:    outcome.Status.String(),
		ExitCode:  outcome.Exit.Code,
		Duration:  outcome.Duration,
		Timestamp: r.now().UTC(),
	}
	if outcome.Err != nil {
		record.Error = outcome.Err.Error()
	}

	if err := r.store.Put(r.root, record); err != nil {
		r.logger.Warn(zerr.With(zerr.Wrap(err, "failed to record build"), "target", target).Error())
	}
}
