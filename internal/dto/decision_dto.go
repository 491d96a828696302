package dto

// Identity fields repeated on every decision service request.
type PatientIdentity struct {
	PatientName string `json:"patient_name"`
	PhoneNumber string `json:"phone_number"`
	Language    string `json:"language"`
}

type AnalyzeVitalsRequest struct {
	PatientIdentity
	Systolic    int     `json:"blood_pressure_systolic"`
	Diastolic   int     `json:"blood_pressure_diastolic"`
	BloodSugar  int     `json:"blood_sugar"`
	BMI         float64 `json:"bmi"`
	Temperature float64 `json:"temperature"`
}

type AnalyzeVitalsResponse struct {
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Emergency bool   `json:"emergency"`
}

type BookAppointmentRequest struct {
	PatientIdentity
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// BookAppointmentResponse is informational only; any 2xx is a booked appointment.
type BookAppointmentResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

type PostOpChatRequest struct {
	PatientName string `json:"patient_name"`
	PhoneNumber string `json:"phone_number"`
	SurgeryType string `json:"surgery_type"`
	Message     string `json:"message"`
	Language    string `json:"language"`
}

type PostOpChatResponse struct {
	ResponseText string `json:"response_text"`
	Severity     string `json:"severity"`
	Alert        bool   `json:"alert"`
}

type CareCallRequest struct {
	PatientIdentity
	Reason string `json:"reason"`
}

type CareCallResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body the decision service sends with a 4xx.
type ErrorResponse struct {
	Error string `json:"error"`
}
