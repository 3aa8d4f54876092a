package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

func TestAuditService_PersistsOnShutdown(t *testing.T) {
	repo := &fakeAudit{}
	m := metrics.NewCollector("test", prometheus.NewRegistry())
	svc := NewAuditService(repo, m, zap.NewNop())

	caller := domain.Caller{UserID: uuid.New(), Role: domain.RoleMember, IP: "10.0.0.1", RequestID: "req-1"}
	svc.LogAsync(AuditEntry{Caller: caller, Action: domain.ActionCreate, ResourceType: "reading", ResourceID: "r1"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	svc.Shutdown(ctx)

	entries := repo.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, caller.UserID, entries[0].UserID)
	assert.Equal(t, "req-1", entries[0].RequestID)
	assert.Equal(t, "{}", entries[0].Changes)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditEntriesTotal))
}

func TestAuditService_DropsWhenFullOrClosed(t *testing.T) {
	repo := &fakeAudit{block: make(chan struct{})}
	m := metrics.NewCollector("test", prometheus.NewRegistry())
	svc := newAuditService(repo, m, zap.NewNop(), 1)

	// The worker takes the first entry and blocks on it, the second fills the
	// buffer and the rest are dropped.
	for i := 0; i < 5; i++ {
		svc.LogAsync(AuditEntry{Action: domain.ActionRead, ResourceType: "analytics"})
		time.Sleep(5 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.AuditBufferDropped), 3.0)

	close(repo.block)
	svc.Shutdown(context.Background())

	before := testutil.ToFloat64(m.AuditBufferDropped)
	svc.LogAsync(AuditEntry{Action: domain.ActionRead})
	assert.Equal(t, before+1, testutil.ToFloat64(m.AuditBufferDropped))

	assert.NotPanics(t, func() { svc.Shutdown(context.Background()) })
}

func TestAuditService_NilIsNoop(t *testing.T) {
	var svc *AuditService
	assert.NotPanics(t, func() { svc.LogAsync(AuditEntry{}) })
}
