package alert

import (
	"time"

	"medfollow-client/internal/scheduler"
)

type Kind string

const (
	KindInfo      Kind = "info"
	KindEmergency Kind = "emergency"
)

type Toast struct {
	Visible bool   `json:"visible"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

type Banner struct {
	Visible bool   `json:"visible"`
	Message string `json:"message"`
}

// Center holds the floating toast and the emergency banner. The two are
// independent: each has its own key, duration and generation.
type Center struct {
	sched     scheduler.Scheduler
	toastFor  time.Duration
	bannerFor time.Duration

	toast     Toast
	toastGen  uint64
	banner    Banner
	bannerGen uint64
}

func NewCenter(sched scheduler.Scheduler, toastFor, bannerFor time.Duration) *Center {
	return &Center{sched: sched, toastFor: toastFor, bannerFor: bannerFor}
}

// ShowToast replaces any visible toast and restarts its countdown.
func (c *Center) ShowToast(message string) {
	c.toastGen++
	gen := c.toastGen
	c.toast = Toast{Visible: true, Message: message, Kind: KindInfo}
	c.sched.Schedule(scheduler.KeyToast, c.toastFor, func() { c.dismissToast(gen) })
}

// Escalate shows the banner. A trigger while it is visible keeps one banner and
// restarts the countdown from now.
func (c *Center) Escalate(message string) {
	c.bannerGen++
	gen := c.bannerGen
	c.banner = Banner{Visible: true, Message: message}
	c.sched.Schedule(scheduler.KeyBanner, c.bannerFor, func() { c.dismissBanner(gen) })
}

func (c *Center) dismissToast(gen uint64) {
	if gen != c.toastGen {
		return
	}
	c.toast.Visible = false
}

func (c *Center) dismissBanner(gen uint64) {
	if gen != c.bannerGen {
		return
	}
	c.banner.Visible = false
}

func (c *Center) Toast() Toast { return c.toast }

func (c *Center) Banner() Banner { return c.banner }
