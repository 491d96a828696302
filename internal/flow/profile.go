package flow

import (
	"strings"

	"medfollow-client/internal/dto"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/session"
)

type Profile struct {
	Name  string `validate:"required"`
	Phone string `validate:"required"`
}

func ParseProfile(form Form) (Profile, error) {
	p := Profile{
		Name:  strings.TrimSpace(form.Get(FieldPatientName)),
		Phone: strings.TrimSpace(form.Get(FieldPatientPhone)),
	}
	if err := check(p, i18n.KeyAlertFillFields); err != nil {
		return Profile{}, err
	}
	return p, nil
}

const (
	CareCallReason     = "User requested customer care assistance."
	DefaultPatientName = "Patient"
	CareCallSuccess    = "success"
)

func CareCallRequest(s *session.Session) (dto.CareCallRequest, error) {
	if strings.TrimSpace(s.PatientPhone) == "" {
		return dto.CareCallRequest{}, &ValidationError{Key: i18n.KeyErrPhoneMissing}
	}
	name := s.PatientName
	if name == "" {
		name = DefaultPatientName
	}
	return dto.CareCallRequest{
		PatientIdentity: dto.PatientIdentity{
			PatientName: name,
			PhoneNumber: s.PatientPhone,
			Language:    string(s.Language),
		},
		Reason: CareCallReason,
	}, nil
}
