// Package stream pushes committed ledger events to dashboard clients over
// websockets.
package stream

import (
	"log/slog"
	"sync"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
)

const defaultBuffer = 32

// Message is one committed event as seen by subscribers.
type Message struct {
	ClaimID    string    `json:"claim_id"`
	CustomerID string    `json:"customer_id"`
	Status     v1.Status `json:"status"`
	Event      *v1.Event `json:"event"`
}

// Filter selects messages by claim or customer. Empty fields match anything.
type Filter struct {
	ClaimID    string
	CustomerID string
}

func (f Filter) match(m *Message) bool {
	if f.ClaimID != "" && f.ClaimID != m.ClaimID {
		return false
	}
	if f.CustomerID != "" && f.CustomerID != m.CustomerID {
		return false
	}
	return true
}

type subscriber struct {
	filter Filter
	send   chan *Message
}

// Hub implements ledger.Publisher. A subscriber whose buffer is full misses
// messages rather than stalling the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]*subscriber
	nextID int64
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[int64]*subscriber), buffer: buffer}
}

// Subscribe registers a subscriber. The returned cancel func closes the
// channel and must be called once.
func (h *Hub) Subscribe(f Filter) (<-chan *Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	sub := &subscriber{filter: f, send: make(chan *Message, h.buffer)}
	h.subs[id] = sub

	return sub.send, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.send)
		}
	}
}

// Subscribers is the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Publish(claim *v1.Claim, evt *v1.Event) {
	msg := &Message{
		ClaimID:    claim.ClaimID,
		CustomerID: claim.CustomerID,
		Status:     claim.Status,
		Event:      evt,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, sub := range h.subs {
		if !sub.filter.match(msg) {
			continue
		}
		select {
		case sub.send <- msg:
		default:
			slog.Warn("Dropped stream message for slow subscriber",
				"subscriber", id,
				"claim_id", msg.ClaimID,
				"transaction_id", evt.TransactionID)
		}
	}
}
