package scheduler

import (
	"sync"
	"time"
)

type manualTask struct {
	due time.Duration
	seq uint64
	fn  func()
}

// ManualScheduler is a virtual clock for tests. Tasks run synchronously inside Advance.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	tasks   map[Key]manualTask
	stopped bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[Key]manualTask)}
}

func (m *ManualScheduler) Schedule(key Key, delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}
	m.seq++
	m.tasks[key] = manualTask{due: m.now + delay, seq: m.seq, fn: fn}
}

func (m *ManualScheduler) Cancel(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.tasks[key]
	delete(m.tasks, key)
	return ok
}

func (m *ManualScheduler) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = make(map[Key]manualTask)
	m.stopped = true
}

// Advance moves the clock forward by d, running due tasks in deadline order.
// Tasks scheduled by a running task fire in the same call if they fall due.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var (
			nextKey Key
			next    manualTask
			found   bool
		)
		for key, t := range m.tasks {
			if t.due > target {
				continue
			}
			if !found || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
				nextKey, next, found = key, t, true
			}
		}
		if !found {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.tasks, nextKey)
		m.now = next.due
		m.mu.Unlock()

		next.fn()
	}
}

// Pending reports whether a task is scheduled under key.
func (m *ManualScheduler) Pending(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.tasks[key]
	return ok
}

// Remaining is the time left before the task under key fires.
func (m *ManualScheduler) Remaining(key Key) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[key]
	if !ok {
		return 0, false
	}
	return t.due - m.now, true
}

func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
