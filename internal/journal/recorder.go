package journal

import (
	"context"

	"medfollow-client/internal/dto"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/pkg/logger"
	"medfollow-client/internal/session"
	"medfollow-client/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const Topic = "SESSION_JOURNAL"

// Recorder emits session domain events. Implementations never block the caller
// on delivery failures; they log them.
type Recorder interface {
	LanguageSelected(ctx context.Context, lang session.Language)
	ProfileSaved(ctx context.Context, s *session.Session)
	VitalsTriaged(ctx context.Context, s *session.Session, v flow.Vitals, verdict flow.Verdict)
	AppointmentBooked(ctx context.Context, s *session.Session, b flow.Booking)
	ChatReplied(ctx context.Context, s *session.Session, severity flow.Severity, alert bool)
	EmergencyEscalated(ctx context.Context, s *session.Session, source string)
	CareCallRequested(ctx context.Context, req dto.CareCallRequest, status string)
}

// BusRecorder publishes events on the in-process watermill bus.
type BusRecorder struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewBusRecorder(publisher message.Publisher, topic string, log logger.ILogger) *BusRecorder {
	return &BusRecorder{publisher: publisher, topic: topic, logger: log}
}

func (r *BusRecorder) publish(evt events.BaseEvent) {
	if r.publisher == nil {
		return
	}

	payload, err := events.Marshal(evt)
	if err != nil {
		r.logger.Error("JOURNAL", "Failed to encode event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := r.publisher.Publish(r.topic, msg); err != nil {
		r.logger.Error("JOURNAL", "Failed to publish event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
	}
}

func patient(s *session.Session) map[string]interface{} {
	return map[string]interface{}{
		"patient_name": s.PatientName,
		"phone_number": s.PatientPhone,
		"language":     string(s.Language),
	}
}

func with(base map[string]interface{}, kv map[string]interface{}) map[string]interface{} {
	for k, v := range kv {
		base[k] = v
	}
	return base
}

func (r *BusRecorder) LanguageSelected(_ context.Context, lang session.Language) {
	r.publish(events.New(events.TypeLanguageSelected, map[string]interface{}{
		"language": string(lang),
	}))
}

func (r *BusRecorder) ProfileSaved(_ context.Context, s *session.Session) {
	r.publish(events.New(events.TypeProfileSaved, patient(s)))
}

func (r *BusRecorder) VitalsTriaged(_ context.Context, s *session.Session, v flow.Vitals, verdict flow.Verdict) {
	r.publish(events.New(events.TypeVitalsTriaged, with(patient(s), map[string]interface{}{
		"blood_pressure_systolic":  v.Systolic,
		"blood_pressure_diastolic": v.Diastolic,
		"blood_sugar":              v.BloodSugar,
		"bmi":                      v.BMI,
		"temperature":              v.Temperature,
		"severity":                 string(verdict.Severity),
		"emergency":                verdict.Emergency,
	})))
}

func (r *BusRecorder) AppointmentBooked(_ context.Context, s *session.Session, b flow.Booking) {
	r.publish(events.New(events.TypeAppointmentBooked, with(patient(s), map[string]interface{}{
		"doctor": b.Doctor,
		"date":   b.Date,
		"time":   b.Time,
	})))
}

func (r *BusRecorder) ChatReplied(_ context.Context, s *session.Session, severity flow.Severity, alert bool) {
	r.publish(events.New(events.TypeChatReplied, with(patient(s), map[string]interface{}{
		"surgery_type": s.ChatSurgeryType(),
		"severity":     string(severity),
		"alert":        alert,
	})))
}

func (r *BusRecorder) EmergencyEscalated(_ context.Context, s *session.Session, source string) {
	r.publish(events.New(events.TypeEmergencyEscalated, with(patient(s), map[string]interface{}{
		"source":       source,
		"surgery_type": s.SurgeryType,
	})))
}

func (r *BusRecorder) CareCallRequested(_ context.Context, req dto.CareCallRequest, status string) {
	r.publish(events.New(events.TypeCareCallRequested, map[string]interface{}{
		"patient_name": req.PatientName,
		"phone_number": req.PhoneNumber,
		"language":     req.Language,
		"reason":       req.Reason,
		"status":       status,
	}))
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) LanguageSelected(context.Context, session.Language)                         {}
func (NopRecorder) ProfileSaved(context.Context, *session.Session)                             {}
func (NopRecorder) VitalsTriaged(context.Context, *session.Session, flow.Vitals, flow.Verdict) {}
func (NopRecorder) AppointmentBooked(context.Context, *session.Session, flow.Booking)          {}
func (NopRecorder) ChatReplied(context.Context, *session.Session, flow.Severity, bool)         {}
func (NopRecorder) EmergencyEscalated(context.Context, *session.Session, string)               {}
func (NopRecorder) CareCallRequested(context.Context, dto.CareCallRequest, string)             {}
