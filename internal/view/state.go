package view

import (
	"medfollow-client/internal/alert"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/session"
)

// State is everything a renderer needs to draw the client. It holds no
// references into orchestrator state and is safe to hand to other goroutines.
type State struct {
	Screen         navigator.Screen  `json:"screen"`
	Visit          uint64            `json:"visit"`
	Transitioning  bool              `json:"transitioning"`
	NextScreen     navigator.Screen  `json:"nextScreen,omitempty"`
	Language       session.Language  `json:"language"`
	ChosenLanguage session.Language  `json:"chosenLanguage"`
	Theme          session.Theme     `json:"theme"`
	Texts          map[string]string `json:"texts"`
	Greeting       string            `json:"greeting"`
	PatientName    string            `json:"patientName"`
	SurgeryType    string            `json:"surgeryType,omitempty"`
	Inputs         map[string]string `json:"inputs"`
	Doctors        []string          `json:"doctors"`
	OpenVital      string            `json:"openVital,omitempty"`
	Vitals         flow.VitalsPanel  `json:"vitals"`
	Transcript     []ChatEntry       `json:"transcript"`
	Recording      bool              `json:"recording"`
	VoiceAvailable bool              `json:"voiceAvailable"`
	Toast          alert.Toast       `json:"toast"`
	Banner         alert.Banner      `json:"banner"`
	Confirm        *Confirm          `json:"confirm,omitempty"`
}

type ChatEntry struct {
	flow.Turn
	Badge string `json:"badge,omitempty"`
}

// Confirm is a yes/no question awaiting an answer.
type Confirm struct {
	Message string `json:"message"`
	Accept  string `json:"accept"`
	Decline string `json:"decline"`
}

// Source is the live orchestrator state a State is projected from.
type Source struct {
	Session        *session.Session
	Nav            *navigator.Navigator
	Alerts         *alert.Center
	Transcript     *flow.Transcript
	Form           flow.Form
	Doctors        []string
	OpenVital      string
	Vitals         flow.VitalsPanel
	Recording      bool
	VoiceAvailable bool
	Confirm        *Confirm
}

// DisplayLanguage is the language the current screen renders in. Entry screens
// always use the default language, whatever was restored.
func DisplayLanguage(s *session.Session, nav *navigator.Navigator) session.Language {
	if navigator.IsEntryScreen(nav.Current()) {
		return session.DefaultLanguage
	}
	return s.Language
}

// Project resolves every translatable text for the display language and copies
// the live state into a snapshot.
func Project(r *i18n.Resolver, src Source) State {
	lang := DisplayLanguage(src.Session, src.Nav)

	st := State{
		Screen:         src.Nav.Current(),
		Visit:          src.Nav.Visit(),
		Transitioning:  src.Nav.Transitioning(),
		Language:       lang,
		ChosenLanguage: src.Session.Language,
		Theme:          src.Session.Theme,
		Texts:          r.All(lang),
		PatientName:    src.Session.PatientName,
		SurgeryType:    src.Session.SurgeryType,
		Inputs:         src.Form.Snapshot(),
		Doctors:        append([]string(nil), src.Doctors...),
		OpenVital:      src.OpenVital,
		Vitals:         src.Vitals,
		Recording:      src.Recording,
		VoiceAvailable: src.VoiceAvailable,
		Toast:          src.Alerts.Toast(),
		Banner:         src.Alerts.Banner(),
	}
	if next, ok := src.Nav.Target(); ok {
		st.NextScreen = next
	}
	if src.Session.PatientName != "" {
		st.Greeting = r.Format(lang, i18n.KeyHelloPatient, map[string]string{"name": src.Session.PatientName})
	}
	if src.Confirm != nil {
		c := *src.Confirm
		st.Confirm = &c
	}

	label := r.Resolve(lang, i18n.KeySeverityLabel)
	typing := r.Resolve(lang, i18n.KeyMsgTyping)
	turns := src.Transcript.Turns()
	st.Transcript = make([]ChatEntry, len(turns))
	for i, turn := range turns {
		if turn.Pending {
			turn.Text = typing
		}
		st.Transcript[i] = ChatEntry{Turn: turn, Badge: flow.Badge(turn, label)}
	}

	return st
}

type Renderer interface {
	Render(State)
}

type RendererFunc func(State)

func (f RendererFunc) Render(s State) { f(s) }

// Multi fans a state out to several renderers in order.
func Multi(renderers ...Renderer) Renderer {
	return RendererFunc(func(s State) {
		for _, r := range renderers {
			r.Render(s)
		}
	})
}
