// Package events broadcasts queue state changes. Delivery is best-effort:
// publishers never block a mutation and report failures to the caller for
// logging only.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultEventBufferSize  = 1000
	DefaultClientBufferSize = 100
	DefaultMaxClients       = 1000
	DefaultShutdownTimeout  = 5 * time.Second
)

var (
	ErrHubNotRunning  = errors.New("event hub is not running")
	ErrTooManyClients = errors.New("too many event subscribers")
)

// Notifier receives every queue event emitted by the orchestrator.
type Notifier interface {
	Notify(ctx context.Context, event domain.QueueEvent) error
}

// Filter decides whether a subscriber receives an event.
type Filter func(event domain.QueueEvent) bool

// ScopeFor returns the role-scoped filter for an actor: admins see every
// event, everyone else only events for entries they requested or are
// assigned to.
func ScopeFor(actor domain.Actor) Filter {
	if actor.IsAdmin() {
		return func(domain.QueueEvent) bool { return true }
	}
	return func(e domain.QueueEvent) bool { return e.Involves(actor.ID) }
}

type subscriber struct {
	id     string
	events chan domain.QueueEvent
	filter Filter
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	close(s.events)
}

// send reports false when the subscriber's buffer is full.
func (s *subscriber) send(event domain.QueueEvent) bool {
	if s.filter != nil && !s.filter(event) {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return true
	}
	select {
	case s.events <- event:
		return true
	default:
		return false
	}
}

type HubConfig struct {
	EventBufferSize  int
	ClientBufferSize int
	MaxClients       int
	ShutdownTimeout  time.Duration
}

// Hub fans events out to in-process subscribers (the SSE stream). A single
// broadcast loop drains the publish channel, so subscribers observe events in
// the order they were published.
type Hub struct {
	logger  *zap.SugaredLogger
	config  HubConfig
	publish chan domain.QueueEvent

	mu      sync.RWMutex
	clients map[string]*subscriber
	running bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(cfg HubConfig, logger *zap.SugaredLogger) *Hub {
	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = DefaultEventBufferSize
	}
	if cfg.ClientBufferSize <= 0 {
		cfg.ClientBufferSize = DefaultClientBufferSize
	}
	if cfg.MaxClients < 0 {
		cfg.MaxClients = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	return &Hub{
		logger:  logger,
		config:  cfg,
		publish: make(chan domain.QueueEvent, cfg.EventBufferSize),
		clients: make(map[string]*subscriber),
	}
}

func (h *Hub) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	h.running = true
	h.mu.Unlock()

	h.wg.Add(1)
	go h.broadcastLoop(ctx)

	h.logger.Infow("event hub started",
		"event_buffer_size", h.config.EventBufferSize,
		"client_buffer_size", h.config.ClientBufferSize,
		"max_clients", h.config.MaxClients,
	)
}

func (h *Hub) Stop() {
	h.mu.Lock()
	h.running = false
	cancel := h.cancel
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.logger.Info("event hub stopped")
	case <-time.After(h.config.ShutdownTimeout):
		h.logger.Warn("event hub shutdown timeout exceeded")
	}
}

// Notify enqueues the event without blocking.
func (h *Hub) Notify(ctx context.Context, event domain.QueueEvent) error {
	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()
	if !running {
		return ErrHubNotRunning
	}

	select {
	case h.publish <- event:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish cancelled: %w", ctx.Err())
	default:
		return fmt.Errorf("event buffer full, dropped %s for %s", event.EventType, event.QueueID)
	}
}

// Subscribe registers a subscriber. The returned channel is closed when ctx
// ends, the hub stops, or the subscriber falls behind.
func (h *Hub) Subscribe(ctx context.Context, filter Filter) (<-chan domain.QueueEvent, func(), error) {
	h.mu.Lock()
	if h.config.MaxClients > 0 && len(h.clients) >= h.config.MaxClients {
		h.mu.Unlock()
		return nil, nil, ErrTooManyClients
	}

	subCtx, cancel := context.WithCancel(ctx)
	s := &subscriber{
		id:     uuid.NewString(),
		events: make(chan domain.QueueEvent, h.config.ClientBufferSize),
		filter: filter,
		ctx:    subCtx,
		cancel: cancel,
	}
	h.clients[s.id] = s
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		<-s.ctx.Done()
		h.remove(s.id)
	}()

	return s.events, func() { h.remove(s.id) }, nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcastLoop(ctx context.Context) {
	defer h.wg.Done()

	for {
		select {
		case event := <-h.publish:
			h.broadcast(event)
		case <-ctx.Done():
			h.disconnectAll()
			return
		}
	}
}

func (h *Hub) broadcast(event domain.QueueEvent) {
	h.mu.RLock()
	clients := make([]*subscriber, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.send(event) {
			h.logger.Warnw("subscriber buffer full, closing slow connection",
				"subscriber_id", c.id,
				"event_type", event.EventType,
			)
			h.remove(c.id)
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	s, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if ok {
		s.close()
	}
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*subscriber)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
