package scheduler

import (
	"sync"
	"time"
)

// Key identifies a pending task. Scheduling an already pending key supersedes it.
type Key string

const (
	KeyNav           Key = "nav"
	KeyToast         Key = "toast"
	KeyBanner        Key = "banner"
	KeyBookingReturn Key = "booking-return"
)

type Scheduler interface {
	// Schedule runs fn once after delay, cancelling any task pending under key.
	Schedule(key Key, delay time.Duration, fn func())
	// Cancel drops the task pending under key and reports whether there was one.
	Cancel(key Key) bool
	// Stop cancels everything. Later calls to Schedule are ignored.
	Stop()
}

type timerTask struct {
	timer *time.Timer
	seq   uint64
}

// TimerScheduler runs tasks on time.AfterFunc goroutines.
type TimerScheduler struct {
	mu      sync.Mutex
	tasks   map[Key]timerTask
	seq     uint64
	stopped bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{tasks: make(map[Key]timerTask)}
}

func (s *TimerScheduler) Schedule(key Key, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}

	s.seq++
	seq := s.seq
	s.tasks[key] = timerTask{
		seq: seq,
		timer: time.AfterFunc(delay, func() {
			s.mu.Lock()
			cur, ok := s.tasks[key]
			if !ok || cur.seq != seq {
				// superseded after the timer already fired
				s.mu.Unlock()
				return
			}
			delete(s.tasks, key)
			s.mu.Unlock()
			fn()
		}),
	}
}

func (s *TimerScheduler) Cancel(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	return true
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
	s.stopped = true
}

// Bind wraps s so every fired task is handed to post instead of running on the
// timer goroutine. The orchestrator uses it to run callbacks on its own loop.
func Bind(s Scheduler, post func(func())) Scheduler {
	return &boundScheduler{inner: s, post: post}
}

type boundScheduler struct {
	inner Scheduler
	post  func(func())
}

func (b *boundScheduler) Schedule(key Key, delay time.Duration, fn func()) {
	b.inner.Schedule(key, delay, func() { b.post(fn) })
}

func (b *boundScheduler) Cancel(key Key) bool { return b.inner.Cancel(key) }

func (b *boundScheduler) Stop() { b.inner.Stop() }
