package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"medfollow-client/internal/pkg/logger"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"

	"github.com/google/uuid"
)

const (
	TypeState = "state"
	TypeSpeak = "speak"
)

// Outbound is every frame the hub writes.
type Outbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Inbound is a user action sent by a browser client.
type Inbound struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// InboundHandler receives decoded client actions. It runs on the client's read goroutine.
type InboundHandler func(ctx context.Context, clientID uuid.UUID, msg Inbound) error

// Hub fans view snapshots and utterances out to every connected browser.
// The last snapshot is replayed to clients as they connect.
type Hub struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu        sync.RWMutex
	lastState []byte
	inbound   InboundHandler

	logger logger.ILogger
}

var (
	_ view.Renderer = &Hub{}
	_ speech.Sink   = &Hub{}
)

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

// OnInbound sets the handler for actions sent by clients.
func (h *Hub) OnInbound(fn InboundHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inbound = fn
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			if h.lastState != nil {
				select {
				case client.Send <- h.lastState:
				default:
				}
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[client.ID]; ok && c == client {
				delete(h.clients, client.ID)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

// Render broadcasts a state snapshot. It never blocks the caller.
func (h *Hub) Render(st view.State) {
	data, err := json.Marshal(Outbound{Type: TypeState, Data: st})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode state", map[string]interface{}{"error": err.Error()})
		return
	}

	h.mu.Lock()
	h.lastState = data
	h.mu.Unlock()

	h.broadcast(data)
}

// Utter asks connected browsers to play an utterance.
func (h *Hub) Utter(_ context.Context, u speech.Utterance) error {
	data, err := json.Marshal(Outbound{Type: TypeSpeak, Data: u})
	if err != nil {
		return err
	}
	if h.broadcast(data) == 0 {
		return speech.ErrUnsupported
	}
	return nil
}

// broadcast returns how many clients the frame was queued for. Clients with a
// full buffer are dropped.
func (h *Hub) broadcast(data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		select {
		case client.Send <- data:
			sent++
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
			go h.leave(client)
		}
	}
	return sent
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) handleInbound(ctx context.Context, c *Client, raw []byte) {
	h.mu.RLock()
	handler := h.inbound
	h.mu.RUnlock()
	if handler == nil {
		return
	}

	var msg Inbound
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Action == "" {
		h.logger.Warn("Hub", "Ignoring malformed client message", map[string]interface{}{"client_id": c.ID})
		return
	}
	if err := handler(ctx, c.ID, msg); err != nil {
		h.logger.Warn("Hub", "Client action rejected", map[string]interface{}{
			"client_id": c.ID,
			"action":    msg.Action,
			"error":     err.Error(),
		})
	}
}
