package service

import (
	"context"
	"sync"

	"wallet-ledger/internal/core/domain"

	"github.com/rs/zerolog"
)

// AccessAuditService implements ports.AuditService. Events are queued and
// written by a single background goroutine; Record never blocks. When the
// queue is full the event is dropped with a warning.
type AccessAuditService struct {
	log    zerolog.Logger
	events chan *domain.AccessEvent
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAccessAuditService starts the writer goroutine. Call Close on shutdown.
func NewAccessAuditService(log zerolog.Logger, buffer int) *AccessAuditService {
	if buffer < 1 {
		buffer = 1
	}
	s := &AccessAuditService{
		log:    log,
		events: make(chan *domain.AccessEvent, buffer),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Record enqueues an access event.
func (s *AccessAuditService) Record(_ context.Context, event *domain.AccessEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.events <- event:
	default:
		s.log.Warn().Str("action", string(event.Action)).Msg("Audit queue full, event dropped")
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (s *AccessAuditService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AccessAuditService) run() {
	defer close(s.done)
	for event := range s.events {
		s.write(event)
	}
}

func (s *AccessAuditService) write(e *domain.AccessEvent) {
	entry := s.log.Info().
		Str("action", string(e.Action)).
		Str("resource_id", e.ResourceID).
		Str("request_id", e.RequestID).
		Str("ip", e.IPAddress).
		Int("status", e.Status).
		Time("at", e.CreatedAt)
	if e.OwnerID != nil {
		entry = entry.Str("owner_id", e.OwnerID.String())
	}
	entry.Msg("audit")
}
