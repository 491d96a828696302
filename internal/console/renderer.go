package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"

	"github.com/fatih/color"
)

var screenTitles = map[navigator.Screen]i18n.Key{
	navigator.Splash:         i18n.KeyAppTitle,
	navigator.LanguageSelect: i18n.KeySelectLanguageTitle,
	navigator.Profile:        i18n.KeyEnterDetailsTitle,
	navigator.Dashboard:      i18n.KeyDashboardTitle,
	navigator.VitalsEntry:    i18n.KeyBasicCheckupTitle,
	navigator.Appointment:    i18n.KeySpecialTreatmentTitle,
	navigator.PostOpSetup:    i18n.KeyPostOpSetupTitle,
	navigator.Chat:           i18n.KeyAIAssistantTitle,
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	toastColor   = color.New(color.FgYellow)
	bannerColor  = color.New(color.FgWhite, color.BgRed, color.Bold)
	patientColor = color.New(color.FgBlue)
	speakColor   = color.New(color.FgMagenta)
	dimColor     = color.New(color.Faint)
)

func severityColor(sev flow.Severity) *color.Color {
	switch sev {
	case flow.SeverityHigh:
		return color.New(color.FgRed, color.Bold)
	case flow.SeverityModerate:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func styleColor(style string) *color.Color {
	switch style {
	case flow.StyleCritical:
		return severityColor(flow.SeverityHigh)
	case flow.StyleModerate:
		return severityColor(flow.SeverityModerate)
	default:
		return severityColor(flow.SeverityLow)
	}
}

// Renderer prints what changed between consecutive states.
type Renderer struct {
	mu      sync.Mutex
	out     io.Writer
	started bool
	prev    view.State
	printed map[string]bool // resolved turns already shown
}

var (
	_ view.Renderer = &Renderer{}
	_ speech.Sink   = &Renderer{}
)

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, printed: make(map[string]bool)}
}

func (r *Renderer) Render(st view.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.prev
	first := !r.started
	r.started = true
	r.prev = st

	if !st.Transitioning && (first || st.Visit != prev.Visit) {
		headerColor.Fprintf(r.out, "== %s ==\n", st.Texts[screenTitles[st.Screen].String()])
		if st.Screen == navigator.Dashboard && st.Greeting != "" {
			fmt.Fprintln(r.out, st.Greeting)
		}
	}
	if st.Theme != prev.Theme && !first {
		dimColor.Fprintf(r.out, "(theme: %s)\n", st.Theme)
	}

	if st.Banner.Visible && !prev.Banner.Visible {
		bannerColor.Fprintf(r.out, " %s ", st.Banner.Message)
		fmt.Fprintln(r.out)
	}
	if st.Toast.Visible && (!prev.Toast.Visible || st.Toast.Message != prev.Toast.Message) {
		toastColor.Fprintf(r.out, "! %s\n", st.Toast.Message)
	}

	if st.Vitals.Visible && st.Vitals != prev.Vitals {
		styleColor(st.Vitals.Style).Fprintf(r.out, "%s\n", st.Vitals.SeverityLabel)
		fmt.Fprintln(r.out, st.Vitals.Message)
		if st.Vitals.BookShortcutVisible {
			dimColor.Fprintf(r.out, "(type 'go appointment' to %s)\n", st.Texts[i18n.KeyBtnBookDoc.String()])
		}
	}

	if st.Confirm != nil && prev.Confirm == nil {
		fmt.Fprintf(r.out, "? %s [%s/%s]\n", st.Confirm.Message, st.Confirm.Accept, st.Confirm.Decline)
	}

	if st.Recording != prev.Recording && !first {
		if st.Recording {
			dimColor.Fprintln(r.out, "(listening... send 'audio <file>' or 'mic' to stop)")
		} else {
			dimColor.Fprintln(r.out, "(microphone off)")
		}
	}

	r.printTranscript(st.Transcript, len(prev.Transcript))
}

func (r *Renderer) printTranscript(entries []view.ChatEntry, before int) {
	for i, e := range entries {
		if e.Pending {
			if i >= before {
				dimColor.Fprintf(r.out, "  %s\n", e.Text)
			}
			continue
		}
		if r.printed[e.ID] {
			continue
		}
		r.printed[e.ID] = true

		if e.Speaker == flow.SpeakerPatient {
			patientColor.Fprintf(r.out, "> %s\n", e.Text)
			continue
		}
		c := severityColor(e.Severity)
		if e.Badge != "" {
			c.Fprintf(r.out, "[%s] ", e.Badge)
		}
		fmt.Fprintln(r.out, e.Text)
	}
}

// Utter prints speech instead of playing it.
func (r *Renderer) Utter(_ context.Context, u speech.Utterance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	speakColor.Fprintf(r.out, "(speaking %s) %s\n", u.Lang, u.Text)
	return nil
}
