package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"medfollow-client/internal/dto"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	PathAnalyze     = "/analyze"
	PathBook        = "/book-appointment"
	PathPostOpChat  = "/postop-chat"
	PathCareCall    = "/customer-care-call"
	tracerName      = "medfollow-client/backend"
	maxErrorBodyLen = 512
)

// DecisionService is the external triage, booking, chat and call-dispatch service.
type DecisionService interface {
	AnalyzeVitals(ctx context.Context, req dto.AnalyzeVitalsRequest) (*dto.AnalyzeVitalsResponse, error)
	BookAppointment(ctx context.Context, req dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, error)
	PostOpChat(ctx context.Context, req dto.PostOpChatRequest) (*dto.PostOpChatResponse, error)
	CallCustomerCare(ctx context.Context, req dto.CareCallRequest) (*dto.CareCallResponse, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("decision service %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx body is not the expected JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unmarshal %s response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type HTTPClient struct {
	BaseURL string
	Client  *http.Client
	tracer  trace.Tracer
}

var _ DecisionService = &HTTPClient{}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.Tracer(tracerName),
	}
}

func (c *HTTPClient) AnalyzeVitals(ctx context.Context, req dto.AnalyzeVitalsRequest) (*dto.AnalyzeVitalsResponse, error) {
	var resp dto.AnalyzeVitalsResponse
	if err := c.post(ctx, PathAnalyze, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BookAppointment treats any 2xx as booked, even when the body does not decode.
func (c *HTTPClient) BookAppointment(ctx context.Context, req dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, error) {
	var resp dto.BookAppointmentResponse
	if err := c.post(ctx, PathBook, req, &resp); err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return &dto.BookAppointmentResponse{}, nil
		}
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) PostOpChat(ctx context.Context, req dto.PostOpChatRequest) (*dto.PostOpChatResponse, error) {
	var resp dto.PostOpChatResponse
	if err := c.post(ctx, PathPostOpChat, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CallCustomerCare(ctx context.Context, req dto.CareCallRequest) (*dto.CareCallResponse, error) {
	var resp dto.CareCallResponse
	if err := c.post(ctx, PathCareCall, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "decision "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("decision service %s: %w", path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBodyLen {
			body = body[:maxErrorBodyLen]
		}
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
