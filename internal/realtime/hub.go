package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/metrics"
)

// Message is the envelope pushed to websocket clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Client struct {
	ID     string
	UserID uint
	Send   chan []byte
}

func NewClient(id string, userID uint) *Client {
	return &Client{ID: id, UserID: userID, Send: make(chan []byte, 32)}
}

type Hub struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// RegisterClient and UnregisterClient return immediately once Run has stopped.
func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) BroadcastJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("marshal broadcast payload", "error", err)
		return
	}
	select {
	case h.broadcast <- b:
	case <-h.done:
	}
}

// SendToUser delivers data to every connection of userID. Full buffers are skipped.
func (h *Hub) SendToUser(userID uint, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		logger.Error("marshal message", "user_id", userID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			logger.Warn("websocket client buffer full, dropping message", "client_id", client.ID)
		}
	}
}

// Connected reports how many connections userID has open.
func (h *Hub) Connected(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, c := range h.clients {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			metrics.WebsocketClients.Set(0)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			metrics.WebsocketClients.Set(float64(len(h.clients)))
			h.mu.Unlock()
			logger.Info("websocket client registered", "client_id", client.ID, "user_id", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				logger.Info("websocket client unregistered", "client_id", client.ID)
			}
			metrics.WebsocketClients.Set(float64(len(h.clients)))
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, id)
				}
			}
			metrics.WebsocketClients.Set(float64(len(h.clients)))
			h.mu.Unlock()
		}
	}
}
