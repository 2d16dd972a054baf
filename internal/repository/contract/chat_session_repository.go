package contract

import (
	"context"
	"errors"

	"farmmarket-be/internal/entity"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned by UpdateCAS when the stored session version
// no longer matches the one the caller loaded; the caller must reload.
var ErrVersionConflict = errors.New("chat session was modified concurrently")

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// FindLatestByUser returns the most recently touched session for the
	// user, or (nil, nil) when none exists.
	FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)
	// UpdateCAS persists session state guarded by the version the entity was
	// loaded with. On success the entity's version is bumped; on a stale
	// version it returns ErrVersionConflict and writes nothing.
	UpdateCAS(ctx context.Context, session *entity.ChatSession) error
}
