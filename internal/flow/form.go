package flow

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"medfollow-client/internal/i18n"

	"github.com/go-playground/validator/v10"
)

// Field names match the input ids the renderers bind to.
type Field string

const (
	FieldPatientName  Field = "patientName"
	FieldPatientPhone Field = "patientPhone"
	FieldSystolic     Field = "bpSystolic"
	FieldDiastolic    Field = "bpDiastolic"
	FieldSugar        Field = "sugar"
	FieldBMI          Field = "bmiVal"
	FieldTemperature  Field = "tempVal"
	FieldDoctor       Field = "doctorSelect"
	FieldDate         Field = "aptDate"
	FieldTime         Field = "aptTime"
	FieldSurgeryType  Field = "surgeryType"
	FieldChatInput    Field = "chatInput"
)

var fields = map[Field]struct{}{
	FieldPatientName: {}, FieldPatientPhone: {}, FieldSystolic: {}, FieldDiastolic: {},
	FieldSugar: {}, FieldBMI: {}, FieldTemperature: {}, FieldDoctor: {}, FieldDate: {},
	FieldTime: {}, FieldSurgeryType: {}, FieldChatInput: {},
}

func ParseField(s string) (Field, bool) {
	_, ok := fields[Field(s)]
	return Field(s), ok
}

// Form is the current value of every input. Missing fields read as empty.
type Form map[Field]string

func (f Form) Get(field Field) string { return f[field] }

func (f Form) Set(field Field, value string) { f[field] = value }

func (f Form) Clear(fs ...Field) {
	for _, field := range fs {
		delete(f, field)
	}
}

// Snapshot copies the form keyed by field name.
func (f Form) Snapshot() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[string(k)] = v
	}
	return out
}

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is a local precondition failure. Key is the message shown to the user.
type ValidationError struct {
	Key i18n.Key
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return "validation failed (" + e.Key.String() + "): " + e.Err.Error()
	}
	return "validation failed (" + e.Key.String() + ")"
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var validate = validator.New()

func check(s interface{}, key i18n.Key) error {
	if err := validate.Struct(s); err != nil {
		return &ValidationError{Key: key, Err: err}
	}
	return nil
}

var floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseIntPrefix reads the leading integer of s, ignoring whatever follows.
// Anything without a leading integer is 0.
func parseIntPrefix(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parseFloatPrefix reads the leading decimal number of s. Anything else is 0.
func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
