// Package events fans domain events out to the screens of one company.
package events

import (
	"context"
	"sync"
	"time"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBuffer = 16

// Publisher is what services need from the hub.
type Publisher interface {
	Publish(kind dom.EventKind, companyID, entityID int64)
}

type subscriber struct {
	ch chan dom.Event
}

// Hub is safe for concurrent use. Every channel returned by Subscribe has a
// single consumer; delivery never blocks the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]map[*subscriber]struct{}
	buffer int
	logger *zap.Logger
	now    func() time.Time
}

func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[int64]map[*subscriber]struct{}),
		buffer: buffer,
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe returns a channel of the company's events. It is closed once ctx
// is done.
func (h *Hub) Subscribe(ctx context.Context, companyID int64) <-chan dom.Event {
	s := &subscriber{ch: make(chan dom.Event, h.buffer)}

	h.mu.Lock()
	set, ok := h.subs[companyID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[companyID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[companyID], s)
		if len(h.subs[companyID]) == 0 {
			delete(h.subs, companyID)
		}
		close(s.ch)
		h.mu.Unlock()
	}()
	return s.ch
}

// Subscribers reports how many live subscriptions a company has.
func (h *Hub) Subscribers(companyID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[companyID])
}

func (h *Hub) Publish(kind dom.EventKind, companyID, entityID int64) {
	ev := dom.Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		CompanyID: companyID,
		EntityID:  entityID,
		At:        h.now().UTC(),
	}
	metrics.RecordEventPublished(string(kind))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[companyID] {
		select {
		case s.ch <- ev:
		default:
			metrics.RecordEventDropped()
			h.logger.Warn("event dropped, subscriber buffer full",
				zap.String("kind", string(kind)),
				zap.Int64("company_id", companyID))
		}
	}
}
