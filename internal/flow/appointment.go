package flow

import (
	"strings"

	"medfollow-client/internal/dto"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/session"
)

type Booking struct {
	Doctor string
	Date   string `validate:"required"`
	Time   string `validate:"required"`
}

// PrepareBooking reads the appointment inputs. The doctor is taken as selected,
// falling back to defaultDoctor when the select is untouched.
func PrepareBooking(form Form, defaultDoctor string) (Booking, error) {
	b := Booking{
		Doctor: form.Get(FieldDoctor),
		Date:   strings.TrimSpace(form.Get(FieldDate)),
		Time:   strings.TrimSpace(form.Get(FieldTime)),
	}
	if b.Doctor == "" {
		b.Doctor = defaultDoctor
	}
	if err := check(b, i18n.KeyAlertDateTime); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// Summary is the confirmation question shown before anything is sent.
func (b Booking) Summary(r *i18n.Resolver, lang session.Language) string {
	return r.Format(lang, i18n.KeyConfirmAptMsg, map[string]string{
		"doctor": b.Doctor,
		"date":   b.Date,
		"time":   b.Time,
	})
}

func BookingRequest(s *session.Session, b Booking) dto.BookAppointmentRequest {
	return dto.BookAppointmentRequest{
		PatientIdentity: identity(s),
		Doctor:          b.Doctor,
		Date:            b.Date,
		Time:            b.Time,
	}
}

// ClearBooking empties the date and time inputs after a successful booking.
func ClearBooking(form Form) {
	form.Clear(FieldDate, FieldTime)
}
