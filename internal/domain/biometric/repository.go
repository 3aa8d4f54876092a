package biometric

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Reading) error

	// GetByID returns ErrReadingNotFound if the reading does not exist or was deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*Reading, error)

	// Latest returns the most recent reading by timestamp, or ErrNoReadings.
	Latest(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID) (*Reading, error)

	// ListInRange returns readings with from <= measurement date <= to, oldest first.
	ListInRange(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID, from, to time.Time) ([]*Reading, error)

	// List returns a paginated page, newest first.
	List(ctx context.Context, q *ListReadingsQuery) (*PagedReadings, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
}
