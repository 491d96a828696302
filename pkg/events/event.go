package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event defines the contract for all session events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "EMERGENCY_ESCALATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeLanguageSelected   = "LANGUAGE_SELECTED"
	TypeProfileSaved       = "PROFILE_SAVED"
	TypeVitalsTriaged      = "VITALS_TRIAGED"
	TypeAppointmentBooked  = "APPOINTMENT_BOOKED"
	TypeChatReplied        = "CHAT_REPLIED"
	TypeEmergencyEscalated = "EMERGENCY_ESCALATED"
	TypeCareCallRequested  = "CARE_CALL_REQUESTED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// envelope carries the type and time with the payload so a consumer can rebuild
// the event without relying on the transport subject.
type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func Marshal(e Event) ([]byte, error) {
	data, err := json.Marshal(envelope{Type: e.EventType(), OccurredAt: e.Timestamp(), Data: e.Payload()})
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.EventType(), err)
	}
	return data, nil
}

func Unmarshal(raw []byte) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if env.Type == "" {
		return BaseEvent{}, fmt.Errorf("unmarshal event: missing type")
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
