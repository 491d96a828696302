package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"medfollow-client/internal/navigator"
	"medfollow-client/internal/orchestrator"
	"medfollow-client/internal/pkg/serverutils"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"
	ws "medfollow-client/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	mu      sync.Mutex
	actions []orchestrator.Action
}

func (d *fakeDriver) Dispatch(_ context.Context, a orchestrator.Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, a)
	return nil
}

func (d *fakeDriver) Snapshot(context.Context) (view.State, error) {
	return view.State{Screen: navigator.Dashboard}, nil
}

func (d *fakeDriver) dispatched() []orchestrator.Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]orchestrator.Action(nil), d.actions...)
}

type fakeAudio struct {
	got  []byte
	fail error
}

func (a *fakeAudio) Submit(audio []byte) error {
	if a.fail != nil {
		return a.fail
	}
	a.got = audio
	return nil
}

func newApp(driver SessionDriver, audio AudioSink) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewSessionController(context.Background(), driver, nil, audio).RegisterRoutes(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, serverutils.BaseResponse) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var body serverutils.BaseResponse
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestStateReturnsSnapshot(t *testing.T) {
	app := newApp(&fakeDriver{}, nil)

	code, body := do(t, app, httptest.NewRequest("GET", "/api/session/state", nil))
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, body.Success)
	assert.Equal(t, "dashboard", body.Data.(map[string]interface{})["screen"])
}

func TestActionDispatch(t *testing.T) {
	driver := &fakeDriver{}
	app := newApp(driver, nil)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"navigate", "/api/session/actions/navigate", `{"screen":"chat"}`, fiber.StatusOK},
		{"no body", "/api/session/actions/submit-vitals", ``, fiber.StatusOK},
		{"unknown action", "/api/session/actions/reboot", `{}`, fiber.StatusNotFound},
		{"unknown screen", "/api/session/actions/navigate", `{"screen":"settings"}`, fiber.StatusBadRequest},
		{"missing screen", "/api/session/actions/navigate", `{}`, fiber.StatusBadRequest},
		{"bad vital group", "/api/session/actions/toggle-vital", `{"group":"pulse"}`, fiber.StatusBadRequest},
		{"bad json", "/api/session/actions/set-input", `{"field":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			code, body := do(t, app, req)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.code == fiber.StatusOK, body.Success)
		})
	}

	got := driver.dispatched()
	require.Len(t, got, 2)
	assert.Equal(t, &orchestrator.Navigate{Screen: "chat"}, got[0])
	assert.Equal(t, "submit-vitals", got[1].Name())
}

func TestVoiceAudio(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		app := newApp(&fakeDriver{}, nil)
		code, _ := do(t, app, httptest.NewRequest("POST", "/api/session/voice/audio", bytes.NewBufferString("x")))
		assert.Equal(t, fiber.StatusNotImplemented, code)
	})

	t.Run("multipart", func(t *testing.T) {
		audio := &fakeAudio{}
		app := newApp(&fakeDriver{}, audio)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "clip.webm")
		require.NoError(t, err)
		_, _ = part.Write([]byte("RIFFdata"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST", "/api/session/voice/audio", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		code, _ := do(t, app, req)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, []byte("RIFFdata"), audio.got)
	})

	t.Run("not listening", func(t *testing.T) {
		app := newApp(&fakeDriver{}, &fakeAudio{fail: speech.ErrNotListening})
		req := httptest.NewRequest("POST", "/api/session/voice/audio", bytes.NewBufferString("raw"))
		req.Header.Set("Content-Type", "audio/webm")
		code, _ := do(t, app, req)
		assert.Equal(t, fiber.StatusConflict, code)
	})

	t.Run("empty body", func(t *testing.T) {
		app := newApp(&fakeDriver{}, &fakeAudio{})
		code, _ := do(t, app, httptest.NewRequest("POST", "/api/session/voice/audio", nil))
		assert.Equal(t, fiber.StatusBadRequest, code)
	})
}

func TestHandleInbound(t *testing.T) {
	driver := &fakeDriver{}
	c := NewSessionController(context.Background(), driver, nil, nil)

	require.NoError(t, c.HandleInbound(context.Background(), uuid.New(), ws.Inbound{
		Action:  "set-input",
		Payload: json.RawMessage(`{"field":"chatInput","value":"hello"}`),
	}))
	assert.Error(t, c.HandleInbound(context.Background(), uuid.New(), ws.Inbound{Action: "select-language", Payload: json.RawMessage(`{"language":"fr"}`)}))

	got := driver.dispatched()
	require.Len(t, got, 1)
	assert.Equal(t, &orchestrator.SetInput{Field: "chatInput", Value: "hello"}, got[0])
}
