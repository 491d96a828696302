package navigator

import (
	"time"

	"medfollow-client/internal/scheduler"
)

type Screen string

const (
	Splash         Screen = "splash"
	LanguageSelect Screen = "language"
	Profile        Screen = "profile"
	Dashboard      Screen = "dashboard"
	VitalsEntry    Screen = "vitals"
	Appointment    Screen = "appointment"
	PostOpSetup    Screen = "postop-setup"
	Chat           Screen = "chat"
)

var screens = map[Screen]struct{}{
	Splash: {}, LanguageSelect: {}, Profile: {}, Dashboard: {},
	VitalsEntry: {}, Appointment: {}, PostOpSetup: {}, Chat: {},
}

func ParseScreen(s string) (Screen, bool) {
	_, ok := screens[Screen(s)]
	return Screen(s), ok
}

// IsEntryScreen reports screens that always render in the default language.
func IsEntryScreen(s Screen) bool {
	return s == Splash || s == LanguageSelect
}

// Ticket identifies one activation of a screen. Responses carry the ticket that
// was current when their request was issued.
type Ticket struct {
	Screen Screen
	Visit  uint64
}

// Navigator owns the active screen. It is not safe for concurrent use; the
// scheduler it is given must deliver callbacks on the owner's goroutine.
type Navigator struct {
	sched scheduler.Scheduler
	delay time.Duration

	current       Screen
	visit         uint64
	transitioning bool
	target        Screen
	seq           uint64

	onActivate func(Screen)
}

func New(sched scheduler.Scheduler, delay time.Duration) *Navigator {
	return &Navigator{
		sched:   sched,
		delay:   delay,
		current: Splash,
		visit:   1,
	}
}

// OnActivate registers a hook run after every activation.
func (n *Navigator) OnActivate(fn func(Screen)) {
	n.onActivate = fn
}

// NavigateTo deactivates the current screen now and activates target after the
// transition delay. Every request is accepted; a newer one supersedes a pending one.
func (n *Navigator) NavigateTo(target Screen) {
	n.transitioning = true
	n.target = target
	n.seq++
	seq := n.seq
	n.sched.Schedule(scheduler.KeyNav, n.delay, func() { n.activate(seq) })
}

func (n *Navigator) activate(seq uint64) {
	if seq != n.seq || !n.transitioning {
		return
	}
	n.current = n.target
	n.visit++
	n.transitioning = false
	if n.onActivate != nil {
		n.onActivate(n.current)
	}
}

func (n *Navigator) Current() Screen { return n.current }

// Visit increments on every activation, including revisits of the same screen.
func (n *Navigator) Visit() uint64 { return n.visit }

func (n *Navigator) Transitioning() bool { return n.transitioning }

// Target is the screen being transitioned to, if any.
func (n *Navigator) Target() (Screen, bool) {
	return n.target, n.transitioning
}

func (n *Navigator) Ticket() Ticket {
	return Ticket{Screen: n.current, Visit: n.visit}
}

// IsCurrent reports whether t still names the active screen activation and no
// transition away from it has started.
func (n *Navigator) IsCurrent(t Ticket) bool {
	return !n.transitioning && t == n.Ticket()
}
