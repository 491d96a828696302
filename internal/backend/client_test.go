package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medfollow-client/internal/dto"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, r chi.Router) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAnalyzeVitalsWireFormat(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathAnalyze, func(w http.ResponseWriter, req *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "Asha", body["patient_name"])
		assert.Equal(t, "9999999999", body["phone_number"])
		assert.Equal(t, "Hindi", body["language"])
		assert.EqualValues(t, 150, body["blood_pressure_systolic"])
		assert.EqualValues(t, 95, body["blood_pressure_diastolic"])
		assert.EqualValues(t, 0, body["blood_sugar"])
		assert.EqualValues(t, 22.5, body["bmi"])
		assert.EqualValues(t, 98.6, body["temperature"])
		writeJSON(w, http.StatusOK, map[string]interface{}{"severity": "high", "message": "see a doctor", "emergency": true})
	})

	got, err := newTestClient(t, r).AnalyzeVitals(context.Background(), dto.AnalyzeVitalsRequest{
		PatientIdentity: dto.PatientIdentity{PatientName: "Asha", PhoneNumber: "9999999999", Language: "Hindi"},
		Systolic:        150,
		Diastolic:       95,
		BMI:             22.5,
		Temperature:     98.6,
	})
	require.NoError(t, err)
	assert.Equal(t, &dto.AnalyzeVitalsResponse{Severity: "high", Message: "see a doctor", Emergency: true}, got)
}

func TestNon2xxIsStatusError(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathPostOpChat, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No message provided"})
	})

	_, err := newTestClient(t, r).PostOpChat(context.Background(), dto.PostOpChatRequest{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, PathPostOpChat, statusErr.Path)
	assert.Contains(t, statusErr.Body, "No message provided")
}

func TestBookAppointmentAcceptsAny2xx(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathBook, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("booked"))
	})

	got, err := newTestClient(t, r).BookAppointment(context.Background(), dto.BookAppointmentRequest{Date: "2026-10-20", Time: "10:30"})
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMalformedChatBodyIsError(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathPostOpChat, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := newTestClient(t, r).PostOpChat(context.Background(), dto.PostOpChatRequest{Message: "hi"})
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestCallCustomerCare(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathCareCall, func(w http.ResponseWriter, req *http.Request) {
		var body dto.CareCallRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "User requested customer care assistance.", body.Reason)
		writeJSON(w, http.StatusOK, dto.CareCallResponse{Status: "success", Message: "Follow-up call initiated"})
	})

	got, err := newTestClient(t, r).CallCustomerCare(context.Background(), dto.CareCallRequest{
		PatientIdentity: dto.PatientIdentity{PatientName: "Patient", PhoneNumber: "1"},
		Reason:          "User requested customer care assistance.",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", got.Status)
}

func TestTransportErrorIsReturned(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.AnalyzeVitals(context.Background(), dto.AnalyzeVitalsRequest{Systolic: 120})
	assert.Error(t, err)
}
