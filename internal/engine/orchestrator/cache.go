package orchestrator

import (
	"sync"

	"go.trai.ch/sob/internal/core/domain"
)

type entry struct {
	status domain.BuildStatus
	err    error
	done   chan struct{}
}

// BuildCache memoizes the status of every target visited in a session.
// It guarantees that at most one caller owns the build of a target;
// every other caller waits for the owner to settle the entry.
type BuildCache struct {
	mu      sync.Mutex
	entries map[domain.Identity]*entry
}

// NewBuildCache creates an empty BuildCache.
func NewBuildCache() *BuildCache {
	return &BuildCache{
		entries: make(map[domain.Identity]*entry),
	}
}

// acquire returns the entry of id. When owner is true the caller created the
// entry in the InProgress state and must settle it with finish or abandon.
func (c *BuildCache) acquire(id domain.Identity) (*entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok {
		return e, false
	}
	e := &entry{status: domain.StatusInProgress, done: make(chan struct{})}
	c.entries[id] = e
	return e, true
}

// result reads the status and error of an entry.
func (c *BuildCache) result(e *entry) (domain.BuildStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return e.status, e.err
}

// finish records a terminal status and releases every waiter.
func (c *BuildCache) finish(e *entry, status domain.BuildStatus, err error) {
	c.mu.Lock()
	e.status = status
	e.err = err
	c.mu.Unlock()
	close(e.done)
}

// abandon forgets an entry whose command never started, so a later build may retry it.
func (c *BuildCache) abandon(id domain.Identity, e *entry, err error) {
	c.mu.Lock()
	if c.entries[id] == e {
		delete(c.entries, id)
	}
	e.status = domain.StatusNotStarted
	e.err = err
	c.mu.Unlock()
	close(e.done)
}

// Status returns the current status of id.
func (c *BuildCache) Status(id domain.Identity) domain.BuildStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok {
		return e.status
	}
	return domain.StatusNotStarted
}

// settledFailure waits until every started target in ids has settled and
// returns the error of the first one, in order, that failed.
func (c *BuildCache) settledFailure(ids []domain.Identity) error {
	for _, id := range ids {
		c.mu.Lock()
		e, ok := c.entries[id]
		c.mu.Unlock()
		if !ok {
			continue
		}

		<-e.done
		if status, err := c.result(e); status == domain.StatusFailed {
			return err
		}
	}
	return nil
}
