// Package mockbackend is a stand-in decision service for local development.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"medfollow-client/internal/backend"
	"medfollow-client/internal/dto"
	"medfollow-client/internal/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const module = "MOCKBACKEND"

type Handler struct {
	log logger.ILogger
}

func NewHandler(log logger.ILogger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(backend.PathAnalyze, h.Analyze)
	r.Post(backend.PathBook, h.Book)
	r.Post(backend.PathPostOpChat, h.Chat)
	r.Post(backend.PathCareCall, h.CareCall)
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeVitalsRequest
	if !decode(w, r, &req) {
		return
	}
	resp := AnalyzeVitals(req)
	h.log.Info(module, "Vitals analyzed", map[string]interface{}{"patient": req.PatientName, "severity": resp.Severity})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Doctor == "" || req.Date == "" || req.Time == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Missing required fields"})
		return
	}
	h.log.Info(module, "Appointment booked", map[string]interface{}{
		"patient": req.PatientName,
		"doctor":  req.Doctor,
		"date":    req.Date,
		"time":    req.Time,
	})
	writeJSON(w, http.StatusOK, dto.BookAppointmentResponse{
		Status:  "success",
		Message: fmt.Sprintf("Appointment confirmed with %s on %s at %s.", req.Doctor, req.Date, req.Time),
	})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.PostOpChatRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No message provided"})
		return
	}
	resp := Reply(req)
	h.log.Info(module, "Chat answered", map[string]interface{}{"patient": req.PatientName, "severity": resp.Severity, "alert": resp.Alert})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CareCall(w http.ResponseWriter, r *http.Request) {
	var req dto.CareCallRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PhoneNumber == "" {
		writeJSON(w, http.StatusOK, dto.CareCallResponse{Status: "error", Message: "No phone number on file"})
		return
	}
	name := req.PatientName
	if name == "" {
		name = "Patient"
	}
	h.log.Info(module, "Care call queued", map[string]interface{}{"patient": name, "reason": req.Reason})
	writeJSON(w, http.StatusOK, dto.CareCallResponse{
		Status:  "success",
		Message: fmt.Sprintf("Follow-up call initiated for %s!", name),
	})
}

func decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
