package wellness

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrScoreNotFound = errors.New("wellness score not found")

type Repository interface {
	Create(ctx context.Context, s *Score) error

	// Latest returns the most recently computed score, or ErrScoreNotFound.
	Latest(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID) (*Score, error)

	// List returns scores newest first.
	List(ctx context.Context, q *ListScoresQuery) (*PagedScores, error)
}
