package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

type AuditEntry struct {
	Caller       domain.Caller
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	StatusCode   int
	// Changes must be a JSON document; empty means "{}".
	Changes string
}

type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	entries chan *domain.AuditLog
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

const (
	auditBufferSize   = 10_000
	auditWriteTimeout = 5 * time.Second
)

func NewAuditService(repo AuditRepository, m *metrics.Collector, log *zap.Logger) *AuditService {
	return newAuditService(repo, m, log, auditBufferSize)
}

func newAuditService(repo AuditRepository, m *metrics.Collector, log *zap.Logger, buffer int) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		entries: make(chan *domain.AuditLog, buffer),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence. If the buffer is full
// or the service is shutting down the entry is dropped with a warning. A nil
// service discards everything.
func (s *AuditService) LogAsync(entry AuditEntry) {
	if s == nil {
		return
	}

	changes := entry.Changes
	if changes == "" {
		changes = "{}"
	}
	al := &domain.AuditLog{
		UserID:       entry.Caller.UserID,
		UserRole:     entry.Caller.Role,
		IPAddress:    entry.Caller.IP,
		RequestID:    entry.Caller.RequestID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		StatusCode:   entry.StatusCode,
		Changes:      changes,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped(al, "audit service closed, dropping entry")
		return
	}

	select {
	case s.entries <- al:
	default:
		s.dropped(al, "audit log buffer full, dropping entry")
	}
}

func (s *AuditService) dropped(al *domain.AuditLog, msg string) {
	s.log.Warn(msg,
		zap.String("action", string(al.Action)),
		zap.String("resource", al.ResourceType),
	)
	if s.metrics != nil {
		s.metrics.AuditBufferDropped.Inc()
	}
}

// Shutdown stops accepting entries and waits for the buffer to drain or ctx to end.
func (s *AuditService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.entries)
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-ctx.Done():
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else if s.metrics != nil {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
