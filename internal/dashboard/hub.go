package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/metrics"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// sendBuffer is the per-client queue depth. A client that falls further
// behind is dropped.
const sendBuffer = 16

// Message is the outgoing WebSocket message format.
type Message struct {
	Type    string      `json:"type"` // "lead", "pong" or "error"
	Lead    *leads.Lead `json:"lead,omitempty"`
	Content string      `json:"content,omitempty"`
}

// clientRequest is the incoming WebSocket message format.
type clientRequest struct {
	Type string `json:"type"` // "ping"
}

type client struct {
	send chan []byte
}

// Hub pushes new leads to every connected admin dashboard. One goroutine
// (Run) owns the client set.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	stopped    chan struct{}
	log        *zap.Logger

	mu    sync.RWMutex
	count int
}

// NewHub creates a Hub. Call Run before serving connections.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		stopped:    make(chan struct{}),
		log:        log,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	clients := make(map[*client]bool)
	setCount := func() {
		h.mu.Lock()
		h.count = len(clients)
		h.mu.Unlock()
		metrics.LiveClients.Set(float64(len(clients)))
	}

	for {
		select {
		case <-ctx.Done():
			for c := range clients {
				close(c.send)
			}
			clients = map[*client]bool{}
			setCount()
			return
		case c := <-h.register:
			clients[c] = true
			setCount()
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
				setCount()
			}
		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					delete(clients, c)
					close(c.send)
					h.log.Warn("dropping slow live client")
				}
			}
			setCount()
		}
	}
}

// Clients returns the number of connected dashboards.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// NotifyLead implements leads.Notifier. It never blocks the submitting
// request: if the broadcast queue is full the event is dropped.
func (h *Hub) NotifyLead(_ context.Context, lead leads.Lead) error {
	payload, err := json.Marshal(Message{Type: "lead", Lead: &lead})
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("live feed queue full, dropping lead", zap.String("id", lead.ID))
	}
	return nil
}

// HandleWebSocket upgrades an admin connection and streams leads to it.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.stopped:
		return
	}

	var writeMu sync.Mutex
	write := func(msg []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteMessage(websocket.TextMessage, msg)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range c.send {
			if err := write(msg); err != nil {
				h.log.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read", zap.Error(err))
			}
			break
		}

		var req clientRequest
		reply := Message{Type: "pong"}
		if err := json.Unmarshal(msg, &req); err != nil {
			reply = Message{Type: "error", Content: "invalid message format"}
		} else if req.Type != "ping" {
			reply = Message{Type: "error", Content: "unknown message type: " + req.Type}
		}
		out, _ := json.Marshal(reply)
		if err := write(out); err != nil {
			break
		}
	}

	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
	<-done
}
