package websocket

import (
	"log/slog"
	"sync"
)

const queueSize = 256

type unicastMessage struct {
	userID  string
	message []byte
}

// Hub tracks the live connections of signed-in owners and routes
// per-owner messages to them.
type Hub struct {
	clients map[*Client]bool

	unicast    chan unicastMessage
	register   chan *Client
	unregister chan *Client

	stop     chan struct{}
	stopOnce sync.Once
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		unicast:    make(chan unicastMessage, queueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("live feed client registered", "user_id", client.userID, "clients", len(h.clients))
		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.logger.Debug("live feed client unregistered", "user_id", client.userID)
			}
		case msg := <-h.unicast:
			for client := range h.clients {
				if client.userID != msg.userID {
					continue
				}
				select {
				case client.send <- msg.message:
				default:
					// slow consumer
					h.drop(client)
				}
			}
		case <-h.stop:
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
}

// SendToUser queues message for every connection of userID. It never
// blocks; when the queue is full the message is dropped and false returned.
func (h *Hub) SendToUser(userID string, message []byte) bool {
	select {
	case h.unicast <- unicastMessage{userID: userID, message: message}:
		return true
	default:
		h.logger.Warn("live feed queue full, dropping message", "user_id", userID)
		return false
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stop:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}
