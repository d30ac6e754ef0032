package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is one model lifecycle notification. The hub owns framing and
// marshalling; publishers hand over typed payloads only.
type Event interface {
	EventType() string
}

// ModelRetrainedEvent announces a finished training run and the f1 the new
// model evaluated at.
type ModelRetrainedEvent struct {
	Version string  `json:"version"`
	F1      float64 `json:"f1_score"`
}

func (ModelRetrainedEvent) EventType() string { return "model_retrained" }

// ModelReloadedEvent announces an artifact reload from disk.
type ModelReloadedEvent struct {
	ModelLoaded bool `json:"model_loaded"`
}

func (ModelReloadedEvent) EventType() string { return "model_reloaded" }

// eventFrame is the wire shape every subscriber receives.
type eventFrame struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Event     Event  `json:"event"`
}

func encodeEvent(evt Event, at time.Time) ([]byte, error) {
	return json.Marshal(eventFrame{
		Type:      evt.EventType(),
		Timestamp: at.UTC().Format(time.RFC3339),
		Event:     evt,
	})
}

// Hub fans model lifecycle events out to every connected client. Events are
// encoded once per broadcast, not per client.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
	now        func() time.Time
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
		now:        time.Now,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS subscriber connected | total=%d", total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS subscriber disconnected | total=%d", total)
			}

		case evt := <-h.broadcast:
			frame, err := encodeEvent(evt, h.now())
			if err != nil {
				if h.logger != nil {
					h.logger.Printf("WS event encode failed | type=%s err=%v", evt.EventType(), err)
				}
				continue
			}

			h.mutex.RLock()
			clientsSnapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				clientsSnapshot = append(clientsSnapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range clientsSnapshot {
				select {
				case client.send <- frame:
				default:
					h.unregister <- client
				}
			}

			if h.logger != nil {
				h.logger.Printf("WS event broadcast | type=%s clients=%d", evt.EventType(), len(clientsSnapshot))
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast queues an event for every subscriber. Never blocks the caller;
// under a full buffer the event is dropped and logged.
func (h *Hub) Broadcast(evt Event) {
	if h == nil || evt == nil {
		return
	}
	select {
	case h.broadcast <- evt:
	default:
		if h.logger != nil {
			h.logger.Printf("WS event dropped | type=%s reason=buffer_full", evt.EventType())
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
