package orchestrator

import (
	"medfollow-client/internal/dto"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/session"
)

var vitalGroups = map[string]bool{"bp": true, "sugar": true, "bmi": true, "temp": true}

func (o *Orchestrator) selectLanguage(raw string) {
	lang, ok := session.ParseLanguage(raw)
	if !ok {
		o.log.Warn(module, "Ignoring unsupported language", map[string]interface{}{"language": raw})
		return
	}
	o.sess.Language = lang
	o.persistPreferences()
	o.speak(o.text(i18n.KeySpeakLanguageSet))
	o.journal.LanguageSelected(o.ctx, lang)
	o.nav.NavigateTo(navigator.Profile)
}

func (o *Orchestrator) saveProfile() {
	p, err := flow.ParseProfile(o.form)
	if err != nil {
		o.fail("save-profile", err)
		return
	}
	o.sess.SetProfile(p.Name, p.Phone)
	o.journal.ProfileSaved(o.ctx, o.sess)
	o.log.Info(module, "Profile saved", map[string]interface{}{"patient": p.Name})
	o.nav.NavigateTo(navigator.Dashboard)
}

// startPostOp skips the setup form once a surgery type is known.
func (o *Orchestrator) startPostOp() {
	if o.sess.SurgeryType != "" {
		o.nav.NavigateTo(navigator.Chat)
		return
	}
	o.nav.NavigateTo(navigator.PostOpSetup)
}

func (o *Orchestrator) navigate(raw string) {
	screen, ok := navigator.ParseScreen(raw)
	if !ok {
		o.log.Warn(module, "Ignoring unknown screen", map[string]interface{}{"screen": raw})
		return
	}
	o.nav.NavigateTo(screen)
}

func (o *Orchestrator) setInput(raw, value string) {
	field, ok := flow.ParseField(raw)
	if !ok {
		o.log.Warn(module, "Ignoring unknown input", map[string]interface{}{"field": raw})
		return
	}
	o.form.Set(field, value)
}

func (o *Orchestrator) toggleVital(group string) {
	if !vitalGroups[group] {
		return
	}
	if o.openVital == group {
		o.openVital = ""
		return
	}
	o.openVital = group
}

func (o *Orchestrator) toggleTheme() {
	o.sess.Theme = o.sess.Theme.Toggle()
	o.persistPreferences()
}

type careCallResult struct {
	req  dto.CareCallRequest
	resp *dto.CareCallResponse
	err  error
}

func (o *Orchestrator) callCustomerCare() {
	req, err := flow.CareCallRequest(o.sess)
	if err != nil {
		o.fail("call-customer-care", err)
		return
	}
	o.toast(i18n.KeyMsgCallInit)

	go func() {
		resp, err := o.backend.CallCustomerCare(o.ctx, req)
		o.post(careCallResult{req: req, resp: resp, err: err})
	}()
}

func (e careCallResult) apply(o *Orchestrator) {
	if e.err != nil {
		o.journal.CareCallRequested(o.ctx, e.req, "error")
		o.fail("call-customer-care", e.err)
		return
	}
	o.journal.CareCallRequested(o.ctx, e.req, e.resp.Status)
	if e.resp.Status != flow.CareCallSuccess {
		o.log.Warn(module, "Care call not queued", map[string]interface{}{"status": e.resp.Status, "message": e.resp.Message})
		o.toast(i18n.KeyAlertServerErr)
		return
	}
	o.toast(i18n.KeyMsgCallQueued)
}
