package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"medfollow-client/internal/alert"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/orchestrator"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"
	"medfollow-client/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func baseState() view.State {
	return view.State{
		Screen: navigator.Dashboard,
		Visit:  1,
		Texts: map[string]string{
			"dashboard_title":    "Patient Dashboard",
			"ai_assistant_title": "AI Assistant",
			"btn_book_doc":       "Book Doctor",
		},
		Greeting: "Hello, Asha",
	}
}

func TestRendererPrintsScreenOnce(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	st := baseState()
	r.Render(st)
	r.Render(st)

	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("== Patient Dashboard ==")))
	assert.Contains(t, out.String(), "Hello, Asha")
}

func TestRendererSkipsTransition(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	st := baseState()
	st.Transitioning = true
	r.Render(st)
	assert.Empty(t, out.String())
}

func TestRendererAlerts(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	st := baseState()
	r.Render(st)
	out.Reset()

	st.Toast = alert.Toast{Visible: true, Message: "Please fill all fields"}
	st.Banner = alert.Banner{Visible: true, Message: "EMERGENCY"}
	r.Render(st)
	r.Render(st)

	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("! Please fill all fields")))
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("EMERGENCY")))
}

func TestRendererVitalsAndConfirm(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	st := baseState()
	st.Vitals = flow.VitalsPanel{Visible: true, SeverityLabel: "Severity: HIGH", Message: "See a doctor", Style: flow.StyleCritical, BookShortcutVisible: true}
	st.Confirm = &view.Confirm{Message: "Book?", Accept: "Yes", Decline: "No"}
	r.Render(st)

	assert.Contains(t, out.String(), "Severity: HIGH")
	assert.Contains(t, out.String(), "See a doctor")
	assert.Contains(t, out.String(), "Book Doctor")
	assert.Contains(t, out.String(), "? Book? [Yes/No]")
}

func TestRendererTranscript(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	st := baseState()
	st.Screen, st.Visit = navigator.Chat, 2
	st.Transcript = []view.ChatEntry{
		{Turn: flow.Turn{ID: "1", Speaker: flow.SpeakerPatient, Text: "my knee hurts"}},
		{Turn: flow.Turn{ID: "2", Speaker: flow.SpeakerAssistant, Text: "Typing...", Pending: true}},
	}
	r.Render(st)
	assert.Contains(t, out.String(), "> my knee hurts")
	assert.Contains(t, out.String(), "Typing...")

	out.Reset()
	st.Transcript = []view.ChatEntry{
		st.Transcript[0],
		{Turn: flow.Turn{ID: "2", Speaker: flow.SpeakerAssistant, Text: "Rest it", Severity: flow.SeverityModerate}, Badge: "Severity: moderate"},
	}
	r.Render(st)
	r.Render(st)

	assert.NotContains(t, out.String(), "my knee hurts")
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("[Severity: moderate] Rest it")))
}

func TestUtter(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	require.NoError(t, r.Utter(context.Background(), speech.Utterance{Text: "Language set", Lang: "en-US"}))
	assert.Contains(t, out.String(), "(speaking en-US) Language set")
}

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want []orchestrator.Action
	}{
		{"go vitals", []orchestrator.Action{&orchestrator.Navigate{Screen: "vitals"}}},
		{"lang Hindi", []orchestrator.Action{&orchestrator.SelectLanguage{Language: "Hindi"}}},
		{"set patientName Asha Rao", []orchestrator.Action{&orchestrator.SetInput{Field: "patientName", Value: "Asha Rao"}}},
		{"set sugar", []orchestrator.Action{&orchestrator.SetInput{Field: "sugar"}}},
		{"vital bp", []orchestrator.Action{&orchestrator.ToggleVital{Group: "bp"}}},
		{"yes", []orchestrator.Action{&orchestrator.ConfirmBooking{Accept: true}}},
		{"NO", []orchestrator.Action{&orchestrator.ConfirmBooking{Accept: false}}},
		{"say  the wound is red ", []orchestrator.Action{
			&orchestrator.SetInput{Field: "chatInput", Value: "the wound is red"},
			&orchestrator.SendMessage{},
		}},
		{"call", []orchestrator.Action{&orchestrator.CallCustomerCare{}}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			cmd, err := Parse(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cmd.Actions)
		})
	}
}

func TestParseSpecialCommands(t *testing.T) {
	cmd, err := Parse("audio /tmp/clip one.wav")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/clip one.wav", cmd.Audio)
	assert.Empty(t, cmd.Actions)

	cmd, err = Parse("help")
	require.NoError(t, err)
	assert.True(t, cmd.Help)

	cmd, err = Parse("   ")
	require.NoError(t, err)
	assert.Equal(t, Command{}, cmd)

	_, err = Parse("quit")
	assert.ErrorIs(t, err, ErrQuit)
}

func TestParseRejects(t *testing.T) {
	for _, line := range []string{"go nowhere", "lang Klingon", "set bogus 1", "go", "say", "dance"} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	PrintEvent(&out, events.New(events.TypeEmergencyEscalated, map[string]interface{}{
		"source":       "chat",
		"patient_name": "Asha",
	}))

	line := out.String()
	assert.Contains(t, line, "EMERGENCY_ESCALATED")
	assert.Contains(t, line, "patient_name=Asha source=chat")
	assert.Equal(t, 1, strings.Count(line, "\n"))
}
