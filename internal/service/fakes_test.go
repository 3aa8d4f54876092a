package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
)

type fakeReadings struct {
	mu   sync.Mutex
	rows []*biometric.Reading
}

func sameProfile(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeReadings) Create(_ context.Context, r *biometric.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeReadings) GetByID(_ context.Context, id uuid.UUID) (*biometric.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id && r.DeletedAt == nil {
			return r, nil
		}
	}
	return nil, biometric.ErrReadingNotFound
}

func (f *fakeReadings) owned(userID uuid.UUID, profileID *uuid.UUID) []*biometric.Reading {
	var out []*biometric.Reading
	for _, r := range f.rows {
		if r.UserID == userID && sameProfile(r.ProfileID, profileID) && r.DeletedAt == nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func (f *fakeReadings) Latest(_ context.Context, userID uuid.UUID, profileID *uuid.UUID) (*biometric.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.owned(userID, profileID)
	if len(rows) == 0 {
		return nil, biometric.ErrNoReadings
	}
	return rows[len(rows)-1], nil
}

func (f *fakeReadings) ListInRange(_ context.Context, userID uuid.UUID, profileID *uuid.UUID, from, to time.Time) ([]*biometric.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*biometric.Reading
	for _, r := range f.owned(userID, profileID) {
		if !r.MeasurementDate.Before(from) && !r.MeasurementDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReadings) List(_ context.Context, q *biometric.ListReadingsQuery) (*biometric.PagedReadings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.owned(q.UserID, q.ProfileID)
	return &biometric.PagedReadings{Readings: rows, TotalCount: int64(len(rows)), Page: q.Page, PageSize: q.PageSize, TotalPages: 1}, nil
}

func (f *fakeReadings) SoftDelete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id && r.DeletedAt == nil {
			now := time.Now()
			r.DeletedAt = &now
			return nil
		}
	}
	return biometric.ErrReadingNotFound
}

type fakeScores struct {
	mu   sync.Mutex
	rows []*wellness.Score
}

func (f *fakeScores) Create(_ context.Context, s *wellness.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, s)
	return nil
}

func (f *fakeScores) Latest(_ context.Context, userID uuid.UUID, profileID *uuid.UUID) (*wellness.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID && sameProfile(f.rows[i].ProfileID, profileID) {
			return f.rows[i], nil
		}
	}
	return nil, wellness.ErrScoreNotFound
}

func (f *fakeScores) List(_ context.Context, q *wellness.ListScoresQuery) (*wellness.PagedScores, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*wellness.Score
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == q.UserID {
			out = append(out, f.rows[i])
		}
	}
	return &wellness.PagedScores{Scores: out, TotalCount: int64(len(out)), Page: q.Page, PageSize: q.PageSize, TotalPages: 1}, nil
}

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	success int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) RecordLoginFailure(_ context.Context, id uuid.UUID, lockedUntil *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.FailedLoginCount++
	if lockedUntil != nil {
		u.LockedUntil = lockedUntil
	}
	return nil
}

func (f *fakeUsers) RecordLoginSuccess(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.FailedLoginCount = 0
	u.LockedUntil = nil
	u.LastLoginAt = &at
	f.success++
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].PasswordHash = hash
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	block   chan struct{}
}

func (f *fakeAudit) Create(_ context.Context, e *domain.AuditLog) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAudit) snapshot() []*domain.AuditLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.AuditLog(nil), f.entries...)
}
