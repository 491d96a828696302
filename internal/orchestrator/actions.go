package orchestrator

import (
	"encoding/json"
	"fmt"

	"medfollow-client/internal/flow"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/session"
)

// Action is a user interaction.
type Action interface {
	Event
	Name() string
}

type SelectLanguage struct {
	Language string `json:"language" validate:"required"`
}

type SaveProfile struct{}

type StartPostOp struct{}

type Navigate struct {
	Screen string `json:"screen" validate:"required"`
}

type SetInput struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// ToggleVital opens one vital input group and closes the others.
type ToggleVital struct {
	Group string `json:"group" validate:"required,oneof=bp sugar bmi temp"`
}

type SubmitVitals struct{}

type BookAppointment struct{}

type ConfirmBooking struct {
	Accept bool `json:"accept"`
}

type SendMessage struct{}

type ToggleVoice struct{}

type ToggleTheme struct{}

type CallCustomerCare struct{}

func (SelectLanguage) Name() string   { return "select-language" }
func (SaveProfile) Name() string      { return "save-profile" }
func (StartPostOp) Name() string      { return "start-postop" }
func (Navigate) Name() string         { return "navigate" }
func (SetInput) Name() string         { return "set-input" }
func (ToggleVital) Name() string      { return "toggle-vital" }
func (SubmitVitals) Name() string     { return "submit-vitals" }
func (BookAppointment) Name() string  { return "book-appointment" }
func (ConfirmBooking) Name() string   { return "confirm-booking" }
func (SendMessage) Name() string      { return "send-message" }
func (ToggleVoice) Name() string      { return "toggle-voice" }
func (ToggleTheme) Name() string      { return "toggle-theme" }
func (CallCustomerCare) Name() string { return "call-customer-care" }

var actionFactories = map[string]func() Action{
	"select-language":    func() Action { return &SelectLanguage{} },
	"save-profile":       func() Action { return &SaveProfile{} },
	"start-postop":       func() Action { return &StartPostOp{} },
	"navigate":           func() Action { return &Navigate{} },
	"set-input":          func() Action { return &SetInput{} },
	"toggle-vital":       func() Action { return &ToggleVital{} },
	"submit-vitals":      func() Action { return &SubmitVitals{} },
	"book-appointment":   func() Action { return &BookAppointment{} },
	"confirm-booking":    func() Action { return &ConfirmBooking{} },
	"send-message":       func() Action { return &SendMessage{} },
	"toggle-voice":       func() Action { return &ToggleVoice{} },
	"toggle-theme":       func() Action { return &ToggleTheme{} },
	"call-customer-care": func() Action { return &CallCustomerCare{} },
}

// NewAction returns an empty action for name, ready to be decoded into.
func NewAction(name string) (Action, bool) {
	factory, ok := actionFactories[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// ParseAction decodes a named action from a JSON body. An empty body is allowed
// for actions without fields. Field values are checked against the domain here.
func ParseAction(name string, body []byte) (Action, error) {
	a, ok := NewAction(name)
	if !ok {
		return nil, fmt.Errorf("unknown action %q", name)
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, a); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	if err := checkAction(a); err != nil {
		return nil, err
	}
	return a, nil
}

func checkAction(a Action) error {
	switch v := a.(type) {
	case *SelectLanguage:
		if _, ok := session.ParseLanguage(v.Language); !ok {
			return fmt.Errorf("unsupported language %q", v.Language)
		}
	case *Navigate:
		if _, ok := navigator.ParseScreen(v.Screen); !ok {
			return fmt.Errorf("unknown screen %q", v.Screen)
		}
	case *SetInput:
		if _, ok := flow.ParseField(v.Field); !ok {
			return fmt.Errorf("unknown field %q", v.Field)
		}
	}
	return nil
}

// Pointer receivers let decoded actions go straight to Dispatch.
func (a *SelectLanguage) apply(o *Orchestrator)   { o.selectLanguage(a.Language) }
func (a *SaveProfile) apply(o *Orchestrator)      { o.saveProfile() }
func (a *StartPostOp) apply(o *Orchestrator)      { o.startPostOp() }
func (a *Navigate) apply(o *Orchestrator)         { o.navigate(a.Screen) }
func (a *SetInput) apply(o *Orchestrator)         { o.setInput(a.Field, a.Value) }
func (a *ToggleVital) apply(o *Orchestrator)      { o.toggleVital(a.Group) }
func (a *SubmitVitals) apply(o *Orchestrator)     { o.submitVitals() }
func (a *BookAppointment) apply(o *Orchestrator)  { o.bookAppointment() }
func (a *ConfirmBooking) apply(o *Orchestrator)   { o.confirmBooking(a.Accept) }
func (a *SendMessage) apply(o *Orchestrator)      { o.sendMessage() }
func (a *ToggleVoice) apply(o *Orchestrator)      { o.toggleVoice() }
func (a *ToggleTheme) apply(o *Orchestrator)      { o.toggleTheme() }
func (a *CallCustomerCare) apply(o *Orchestrator) { o.callCustomerCare() }
