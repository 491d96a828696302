package orchestrator

import (
	"medfollow-client/internal/dto"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/navigator"
)

type vitalsResult struct {
	ticket navigator.Ticket
	vitals flow.Vitals
	resp   *dto.AnalyzeVitalsResponse
	err    error
}

func (o *Orchestrator) submitVitals() {
	v := flow.ParseVitals(o.form)
	if err := v.Validate(); err != nil {
		o.fail("submit-vitals", err)
		return
	}

	req := flow.VitalsRequest(o.sess, v)
	ticket := o.nav.Ticket()
	go func() {
		resp, err := o.backend.AnalyzeVitals(o.ctx, req)
		o.post(vitalsResult{ticket: ticket, vitals: v, resp: resp, err: err})
	}()
}

// A verdict for a screen activation that is gone is not rendered, but an
// emergency in it still escalates.
func (e vitalsResult) apply(o *Orchestrator) {
	if e.err != nil {
		o.fail("submit-vitals", e.err)
		return
	}

	verdict := flow.VerdictFrom(e.resp)
	o.journal.VitalsTriaged(o.ctx, o.sess, e.vitals, verdict)

	if o.nav.IsCurrent(e.ticket) {
		o.vitals = flow.RenderVerdict(verdict, o.text(i18n.KeySeverityLabel))
	} else {
		o.log.Debug(module, "Discarding stale vitals verdict", map[string]interface{}{
			"screen": e.ticket.Screen,
			"visit":  e.ticket.Visit,
		})
	}

	if verdict.Emergency {
		o.escalate("vitals")
	}
}
