package orchestrator

import (
	"medfollow-client/internal/dto"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/scheduler"
	"medfollow-client/internal/view"
)

type bookingResult struct {
	ticket  navigator.Ticket
	booking flow.Booking
	resp    *dto.BookAppointmentResponse
	err     error
}

func (o *Orchestrator) defaultDoctor() string {
	if len(o.cfg.Doctors) == 0 {
		return ""
	}
	return o.cfg.Doctors[0]
}

// bookAppointment validates the inputs and asks for confirmation. Nothing is
// sent until the patient accepts.
func (o *Orchestrator) bookAppointment() {
	b, err := flow.PrepareBooking(o.form, o.defaultDoctor())
	if err != nil {
		o.fail("book-appointment", err)
		return
	}
	o.pendingBooking = &b
	o.confirm = &view.Confirm{
		Message: b.Summary(o.resolver, o.sess.Language),
		Accept:  o.text(i18n.KeyBtnYes),
		Decline: o.text(i18n.KeyBtnNo),
	}
}

func (o *Orchestrator) confirmBooking(accept bool) {
	if o.pendingBooking == nil {
		return
	}
	b := *o.pendingBooking
	o.pendingBooking = nil
	o.confirm = nil
	if !accept {
		return
	}

	req := flow.BookingRequest(o.sess, b)
	ticket := o.nav.Ticket()
	go func() {
		resp, err := o.backend.BookAppointment(o.ctx, req)
		o.post(bookingResult{ticket: ticket, booking: b, resp: resp, err: err})
	}()
}

func (e bookingResult) apply(o *Orchestrator) {
	if e.err != nil {
		o.fail("book-appointment", e.err)
		return
	}

	o.toast(i18n.KeyAlertAptSuccess)
	flow.ClearBooking(o.form)
	o.journal.AppointmentBooked(o.ctx, o.sess, e.booking)

	if !o.nav.IsCurrent(e.ticket) {
		return
	}
	ticket := e.ticket
	o.sched.Schedule(scheduler.KeyBookingReturn, o.cfg.BookingReturnDelay, func() {
		if o.nav.IsCurrent(ticket) {
			o.nav.NavigateTo(navigator.Dashboard)
		}
	})
}
