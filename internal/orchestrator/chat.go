package orchestrator

import (
	"context"
	"errors"

	"medfollow-client/internal/dto"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/navigator"
)

type chatResult struct {
	placeholder string
	resp        *dto.PostOpChatResponse
	err         error
}

type recognitionResult struct {
	seq  uint64
	text string
	err  error
}

func (o *Orchestrator) sendMessage() {
	text, ok := flow.TakeChatMessage(o.sess, o.form)
	if !ok {
		return
	}

	o.transcript.AppendPatient(text)
	id := o.transcript.AppendPlaceholder()
	req := flow.ChatRequest(o.sess, text)
	go func() {
		resp, err := o.backend.PostOpChat(o.ctx, req)
		o.post(chatResult{placeholder: id, resp: resp, err: err})
	}()
}

// Each reply resolves the placeholder created for its own message, whatever
// order replies arrive in.
func (e chatResult) apply(o *Orchestrator) {
	if e.err != nil {
		o.log.Warn(module, "Chat reply failed", map[string]interface{}{"error": e.err.Error()})
		o.transcript.Resolve(e.placeholder, o.text(i18n.KeyAlertServerErr), flow.SeverityHigh)
		return
	}

	severity := flow.ParseSeverity(e.resp.Severity)
	if !o.transcript.Resolve(e.placeholder, e.resp.ResponseText, severity) {
		o.log.Warn(module, "Chat reply for unknown placeholder", map[string]interface{}{"id": e.placeholder})
		return
	}
	o.journal.ChatReplied(o.ctx, o.sess, severity, e.resp.Alert)

	if o.nav.Current() == navigator.Chat && !o.nav.Transitioning() {
		o.speak(e.resp.ResponseText)
	}
	if e.resp.Alert {
		o.escalate("chat")
	}
}

func (o *Orchestrator) toggleVoice() {
	rec, ok := o.recog.Get()
	if !ok {
		o.toast(i18n.KeyErrSpeechUnsupported)
		return
	}

	if o.recording {
		o.endListening()
		return
	}

	o.recording = true
	o.listenSeq++
	seq := o.listenSeq
	ctx, cancel := context.WithCancel(o.ctx)
	o.stopListening = cancel
	tag := o.sess.Language.SpeechTag()

	go func() {
		text, err := rec.Listen(ctx, tag)
		o.post(recognitionResult{seq: seq, text: text, err: err})
	}()
}

func (o *Orchestrator) endListening() {
	o.recording = false
	if o.stopListening != nil {
		o.stopListening()
		o.stopListening = nil
	}
}

// A transcript fills the chat input and is sent as if typed. Results from a
// session the patient already stopped are dropped.
func (e recognitionResult) apply(o *Orchestrator) {
	if e.seq != o.listenSeq || !o.recording {
		return
	}
	o.endListening()

	if e.err != nil {
		if errors.Is(e.err, context.Canceled) {
			return
		}
		o.log.Warn(module, "Speech recognition failed", map[string]interface{}{"error": e.err.Error()})
		o.toast(i18n.KeyErrSpeech)
		return
	}

	o.form.Set(flow.FieldChatInput, e.text)
	o.sendMessage()
}
