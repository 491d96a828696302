package flow

import (
	"strings"

	"medfollow-client/internal/dto"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/session"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

func ParseSeverity(s string) Severity {
	return Severity(strings.ToLower(strings.TrimSpace(s)))
}

// Vitals is one submission. Zero means not entered.
// Diastolic or BMI alone is not enough to submit.
type Vitals struct {
	Systolic    int `validate:"required_without_all=BloodSugar Temperature"`
	Diastolic   int
	BloodSugar  int
	BMI         float64
	Temperature float64
}

func ParseVitals(form Form) Vitals {
	return Vitals{
		Systolic:    parseIntPrefix(form.Get(FieldSystolic)),
		Diastolic:   parseIntPrefix(form.Get(FieldDiastolic)),
		BloodSugar:  parseIntPrefix(form.Get(FieldSugar)),
		BMI:         parseFloatPrefix(form.Get(FieldBMI)),
		Temperature: parseFloatPrefix(form.Get(FieldTemperature)),
	}
}

func (v Vitals) Validate() error {
	return check(v, i18n.KeyAlertOneVital)
}

func VitalsRequest(s *session.Session, v Vitals) dto.AnalyzeVitalsRequest {
	return dto.AnalyzeVitalsRequest{
		PatientIdentity: identity(s),
		Systolic:        v.Systolic,
		Diastolic:       v.Diastolic,
		BloodSugar:      v.BloodSugar,
		BMI:             v.BMI,
		Temperature:     v.Temperature,
	}
}

type Verdict struct {
	Severity  Severity
	Message   string
	Emergency bool
}

func VerdictFrom(resp *dto.AnalyzeVitalsResponse) Verdict {
	return Verdict{
		Severity:  ParseSeverity(resp.Severity),
		Message:   resp.Message,
		Emergency: resp.Emergency,
	}
}

const (
	StyleCritical = "critical"
	StyleModerate = "moderate"
)

type VitalsPanel struct {
	Visible             bool   `json:"visible"`
	SeverityLabel       string `json:"severityLabel"`
	Message             string `json:"message"`
	Style               string `json:"style,omitempty"`
	BookShortcutVisible bool   `json:"bookShortcutVisible"`
}

// RenderVerdict builds the result panel. label is the localized severity prefix.
func RenderVerdict(v Verdict, label string) VitalsPanel {
	p := VitalsPanel{
		Visible:       true,
		SeverityLabel: label + strings.ToUpper(string(v.Severity)),
		Message:       v.Message,
	}
	switch {
	case v.Emergency:
		p.Style = StyleCritical
		p.BookShortcutVisible = true
	case v.Severity == SeverityModerate:
		p.Style = StyleModerate
	}
	return p
}

func identity(s *session.Session) dto.PatientIdentity {
	return dto.PatientIdentity{
		PatientName: s.PatientName,
		PhoneNumber: s.PatientPhone,
		Language:    string(s.Language),
	}
}
