package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
)

// OpHandler applies an operation submitted by a client. The returned
// version is the model version after the operation.
type OpHandler func(ctx context.Context, op json.RawMessage) (version uint64, err error)

type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // clientID -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	handler OpHandler
	version atomic.Uint64
	logger  *slog.Logger
}

// NewHub creates a hub. handler may be nil, in which case submitted
// operations are refused.
func NewHub(handler OpHandler, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		handler:    handler,
		logger:     logger,
	}
}

// Run serves registrations until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, c := range h.clients {
				delete(h.clients, id)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds client. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ServeWS upgrades the request to a websocket and pumps messages for the new
// client until either side closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, opts *websocket.AcceptOptions) {
	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		h.logger.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h, conn)
	if !h.Register(client) {
		conn.Close(websocket.StatusGoingAway, "shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(&Message{
		Type:     TypeWelcome,
		ClientID: client.ClientID,
		Version:  h.version.Load(),
	})

	h.logger.Info("client joined", "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	close(client.send)
	h.mu.Unlock()

	h.logger.Info("client left", "client", client.ClientID)
}

// ClientCount is the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish tells every client the model is now at version. It never blocks;
// a client whose buffer is full misses the event.
func (h *Hub) Publish(version uint64) {
	h.version.Store(version)
	h.broadcast(&Message{Type: TypeModelChanged, Version: version})
}

func (h *Hub) broadcast(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.enqueue(data)
	}
}

func (h *Hub) handleMessage(ctx context.Context, sender *Client, msg *Message) {
	switch msg.Type {
	case TypeOpSubmit:
		h.handleOpSubmit(ctx, sender, msg)
	default:
		h.logger.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

func (h *Hub) handleOpSubmit(ctx context.Context, sender *Client, msg *Message) {
	if h.handler == nil {
		sender.Send(nack("operations not accepted"))
		return
	}
	version, err := h.handler(ctx, msg.Payload)
	if err != nil {
		h.logger.Warn("operation rejected", "error", err, "client", sender.ClientID)
		sender.Send(nack(err.Error()))
		return
	}
	sender.Send(&Message{Type: TypeOpAck, Version: version})
}

func nack(reason string) *Message {
	payload, _ := json.Marshal(ErrorPayload{Reason: reason})
	return &Message{Type: TypeOpNack, Payload: payload}
}
