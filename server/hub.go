package server

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bevatsal1122/agentverse-sub000/sim"
)

const subscriberBuffer = 8

// Hub fans snapshots out to websocket subscribers. A subscriber that
// falls behind misses frames rather than stalling the simulation.
type Hub struct {
	logger *log.Logger

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	latest []byte
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{logger: logger, subs: make(map[*subscriber]struct{})}
}

// Publish encodes snap, keeps it as the latest state, and queues it for
// every subscriber.
func (h *Hub) Publish(snap sim.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for sub := range h.subs {
		select {
		case sub.send <- data:
		default:
		}
	}
	return nil
}

// Latest returns the most recently published snapshot, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// subscribe registers conn and queues the latest snapshot for it.
func (h *Hub) subscribe(conn *websocket.Conn) *subscriber {
	sub := &subscriber{conn: conn, send: make(chan []byte, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	if h.latest != nil {
		sub.send <- h.latest
	}
	h.mu.Unlock()
	go h.writeLoop(sub)
	return sub
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		sub.close()
	}
	h.mu.Unlock()
}

func (h *Hub) writeLoop(sub *subscriber) {
	defer sub.conn.Close()
	for data := range sub.send {
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Printf("server: write to %s failed: %v", sub.conn.RemoteAddr(), err)
			h.unsubscribe(sub)
			for range sub.send {
			}
			return
		}
	}
	_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		delete(h.subs, sub)
		sub.close()
	}
}
