package navigator

import (
	"testing"
	"time"

	"medfollow-client/internal/scheduler"

	"github.com/stretchr/testify/assert"
)

const delay = 400 * time.Millisecond

func TestStartsOnSplash(t *testing.T) {
	n := New(scheduler.NewManualScheduler(), delay)
	assert.Equal(t, Splash, n.Current())
	assert.False(t, n.Transitioning())
	assert.True(t, IsEntryScreen(n.Current()))
}

func TestNavigateToActivatesAfterDelay(t *testing.T) {
	clock := scheduler.NewManualScheduler()
	n := New(clock, delay)

	var activated []Screen
	n.OnActivate(func(s Screen) { activated = append(activated, s) })

	n.NavigateTo(LanguageSelect)
	assert.True(t, n.Transitioning())
	assert.Equal(t, Splash, n.Current())

	clock.Advance(delay - time.Millisecond)
	assert.Equal(t, Splash, n.Current())

	clock.Advance(time.Millisecond)
	assert.Equal(t, LanguageSelect, n.Current())
	assert.False(t, n.Transitioning())
	assert.Equal(t, []Screen{LanguageSelect}, activated)
}

func TestNewerRequestSupersedesPending(t *testing.T) {
	clock := scheduler.NewManualScheduler()
	n := New(clock, delay)

	n.NavigateTo(VitalsEntry)
	clock.Advance(200 * time.Millisecond)
	n.NavigateTo(Appointment)
	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, Splash, n.Current())

	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, Appointment, n.Current())
}

func TestStaleActivationIsIgnored(t *testing.T) {
	n := New(scheduler.NewManualScheduler(), delay)
	n.NavigateTo(Chat)
	n.NavigateTo(Dashboard)

	n.activate(1)
	assert.Equal(t, Splash, n.Current())
	n.activate(2)
	assert.Equal(t, Dashboard, n.Current())
	n.activate(2)
	assert.Equal(t, uint64(2), n.Visit())
}

func TestRevisitBumpsVisit(t *testing.T) {
	clock := scheduler.NewManualScheduler()
	n := New(clock, delay)

	n.NavigateTo(Dashboard)
	clock.Advance(delay)
	first := n.Ticket()

	n.NavigateTo(Dashboard)
	assert.False(t, n.IsCurrent(first))
	clock.Advance(delay)

	second := n.Ticket()
	assert.Equal(t, Dashboard, second.Screen)
	assert.Greater(t, second.Visit, first.Visit)
	assert.False(t, n.IsCurrent(first))
	assert.True(t, n.IsCurrent(second))
}

func TestParseScreen(t *testing.T) {
	s, ok := ParseScreen("chat")
	assert.True(t, ok)
	assert.Equal(t, Chat, s)

	_, ok = ParseScreen("settings")
	assert.False(t, ok)
}
