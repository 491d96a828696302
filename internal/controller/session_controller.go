package controller

import (
	"context"
	"errors"
	"io"
	"strings"

	"medfollow-client/internal/orchestrator"
	"medfollow-client/internal/pkg/serverutils"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"
	ws "medfollow-client/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const maxAudioBytes = 8 << 20

// SessionDriver is the orchestrator as seen by the bridge.
type SessionDriver interface {
	Dispatch(ctx context.Context, a orchestrator.Action) error
	Snapshot(ctx context.Context) (view.State, error)
}

// AudioSink accepts recorded clips for a pending recognition.
type AudioSink interface {
	Submit(audio []byte) error
}

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	State(ctx *fiber.Ctx) error
	Action(ctx *fiber.Ctx) error
	VoiceAudio(ctx *fiber.Ctx) error
	HandleInbound(ctx context.Context, clientID uuid.UUID, msg ws.Inbound) error
}

type sessionController struct {
	base   context.Context
	driver SessionDriver
	audio  AudioSink
	hub    *ws.Hub
}

// NewSessionController wires the bridge. audio may be nil when recognition
// does not come from browser uploads.
func NewSessionController(base context.Context, driver SessionDriver, hub *ws.Hub, audio AudioSink) ISessionController {
	return &sessionController{base: base, driver: driver, audio: audio, hub: hub}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Get("/state", c.State)
	h.Post("/actions/:name", c.Action)
	h.Post("/voice/audio", c.VoiceAudio)

	if c.hub != nil {
		h.Use("/ws", func(ctx *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(ctx) {
				return ctx.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		h.Get("/ws", websocket.New(func(conn *websocket.Conn) {
			ws.ServeWs(c.base, c.hub, conn)
		}))
	}
}

func (c *sessionController) State(ctx *fiber.Ctx) error {
	st, err := c.driver.Snapshot(ctx.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get state", st))
}

func (c *sessionController) Action(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if _, ok := orchestrator.NewAction(name); !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "unknown action "+name))
	}

	if err := c.dispatch(ctx.Context(), name, ctx.Body()); err != nil {
		return err
	}

	st, err := c.driver.Snapshot(ctx.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success dispatch "+name, st))
}

func (c *sessionController) VoiceAudio(ctx *fiber.Ctx) error {
	if c.audio == nil {
		return ctx.Status(fiber.StatusNotImplemented).JSON(serverutils.ErrorResponse(501, speech.ErrUnsupported.Error()))
	}

	audio, err := readAudio(ctx)
	if err != nil {
		return err
	}

	if err := c.audio.Submit(audio); err != nil {
		if errors.Is(err, speech.ErrNotListening) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success submit audio", nil))
}

// HandleInbound dispatches an action sent over the websocket.
func (c *sessionController) HandleInbound(ctx context.Context, _ uuid.UUID, msg ws.Inbound) error {
	return c.dispatch(ctx, msg.Action, msg.Payload)
}

func (c *sessionController) dispatch(ctx context.Context, name string, body []byte) error {
	a, err := orchestrator.ParseAction(name, body)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(a); err != nil {
		return err
	}
	if err := c.driver.Dispatch(ctx, a); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return nil
}

// readAudio takes the "file" multipart field, or the raw body for any other
// content type.
func readAudio(ctx *fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := ctx.FormFile("file")
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		if fh.Size > maxAudioBytes {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "audio too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body := ctx.Body()
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "audio body is required")
	}
	if len(body) > maxAudioBytes {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "audio too large")
	}
	return append([]byte(nil), body...), nil
}
