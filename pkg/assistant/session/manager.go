// Package session manages the per-user chat session: load-or-create, cached
// hot copies, and optimistic-concurrency patches.
package session

import (
	"context"
	"errors"
	"time"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/contract"
	"farmmarket-be/internal/repository/memory"

	"github.com/google/uuid"
)

// transcript keeps the last turns only; older lines roll off.
const maxTranscriptLines = 40

type Manager struct {
	sessions contract.ChatSessionRepository
	cache    *memory.SessionCache
	log      logger.ILogger
}

func NewManager(sessions contract.ChatSessionRepository, cache *memory.SessionCache, log logger.ILogger) *Manager {
	return &Manager{
		sessions: sessions,
		cache:    cache,
		log:      log,
	}
}

// LoadOrCreate returns the user's most recently touched session, creating an
// empty one when none exists. Store failures propagate; the caller decides
// how to degrade.
func (m *Manager) LoadOrCreate(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	if cached, ok := m.cache.Get(userId); ok {
		return cached, nil
	}

	sess, err := m.sessions.FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	if sess == nil {
		sess = &entity.ChatSession{
			Id:              uuid.New(),
			UserId:          userId,
			Context:         []string{},
			LastInteraction: time.Now(),
		}
		if err := m.sessions.Create(ctx, sess); err != nil {
			return nil, err
		}
	}

	m.cache.Save(sess)
	return sess, nil
}

// Patch applies the state changes and transcript turns to the session and
// persists it with a compare-and-swap on the version it was loaded with. On
// a version conflict the latest row is reloaded and the patch replayed once.
// Persistence failure is logged, never surfaced: the in-memory session keeps
// the applied changes so the conversation continues (the stored copy may lag
// one turn).
func (m *Manager) Patch(ctx context.Context, sess *entity.ChatSession, patch entity.SessionPatch, turns ...string) {
	applyTurn(sess, patch, turns)

	err := m.sessions.UpdateCAS(ctx, sess)
	if err == nil {
		m.cache.Save(sess)
		return
	}

	if errors.Is(err, contract.ErrVersionConflict) {
		m.cache.Delete(sess.UserId)

		fresh, lerr := m.sessions.FindLatestByUser(ctx, sess.UserId)
		if lerr == nil && fresh != nil {
			applyTurn(fresh, patch, turns)
			if rerr := m.sessions.UpdateCAS(ctx, fresh); rerr == nil {
				*sess = *fresh
				m.cache.Save(sess)
				return
			}
		}

		m.log.Warn("session", "session patch lost to a concurrent writer", map[string]interface{}{
			"user_id": sess.UserId.String(),
		})
		return
	}

	m.log.Error("session", "failed to persist session patch", map[string]interface{}{
		"user_id": sess.UserId.String(),
		"error":   err.Error(),
	})
}

func applyTurn(sess *entity.ChatSession, patch entity.SessionPatch, turns []string) {
	sess.Data.Apply(patch)
	sess.Context = append(sess.Context, turns...)
	if len(sess.Context) > maxTranscriptLines {
		sess.Context = sess.Context[len(sess.Context)-maxTranscriptLines:]
	}
	sess.LastInteraction = time.Now()
}
