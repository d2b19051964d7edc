// Package events fans ledger notifications out to live subscribers.
package events

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/models"
)

// TypeAchievementUnlocked is the only event type emitted today.
const TypeAchievementUnlocked = "achievement_unlocked"

const defaultBuffer = 16

// Event is one message delivered to subscribers.
type Event struct {
	Type        string               `json:"type"`
	Achievement models.AchievementID `json:"achievement"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	At          time.Time            `json:"at"`
}

// Subscription receives events until it is closed or dropped.
type Subscription struct {
	C    <-chan Event
	ch   chan Event
	hub  *Hub
	once sync.Once
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Hub broadcasts events. A subscriber whose buffer is full is dropped and
// its channel closed; publishing never blocks.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
	now    func() time.Time
	log    *zap.SugaredLogger
}

var _ ledger.Notifier = (*Hub)(nil)

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		now:    time.Now,
		log:    logger.Named("events"),
	}
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Event, h.buffer)
	s := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish delivers ev to every subscriber.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			h.log.Warnw("dropping slow event subscriber", "buffer", h.buffer)
			h.dropLocked(s)
		}
	}
}

// AchievementsUnlocked publishes one event per unlocked achievement.
func (h *Hub) AchievementsUnlocked(ids []models.AchievementID) {
	titles := make(map[models.AchievementID]ledger.Achievement)
	for _, a := range ledger.Catalog() {
		titles[a.ID] = a
	}

	at := h.now()
	for _, id := range ids {
		a := titles[id]
		h.Publish(Event{
			Type:        TypeAchievementUnlocked,
			Achievement: id,
			Title:       a.Title,
			Description: a.Description,
			At:          at,
		})
	}
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		h.dropLocked(s)
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(s)
}

func (h *Hub) dropLocked(s *Subscription) {
	delete(h.subs, s)
	s.once.Do(func() { close(s.ch) })
}
