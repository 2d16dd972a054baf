package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/contract"
	"farmmarket-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepo keeps one row per user and enforces the version check the
// way the database implementation does. Copies go in and out as they would
// through row scanning, so callers never share state with the stored row.
type fakeSessionRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.ChatSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: map[uuid.UUID]*entity.ChatSession{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[session.UserId] = session.Clone()
	return nil
}

func (r *fakeSessionRepo) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[userId]
	if !ok {
		return nil, nil
	}
	return row.Clone(), nil
}

func (r *fakeSessionRepo) UpdateCAS(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[session.UserId]
	if !ok || row.Version != session.Version {
		return contract.ErrVersionConflict
	}
	cp := session.Clone()
	cp.Version++
	r.rows[session.UserId] = cp
	session.Version++
	return nil
}

func newTestManager(repo *fakeSessionRepo) *Manager {
	logPath := filepath.Join(os.TempDir(), "session_manager_test.log")
	return NewManager(repo, memory.NewSessionCache(), logger.NewIsolatedLogger(logPath))
}

func TestLoadOrCreateCreatesEmptySession(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	userId := uuid.New()

	sess, err := m.LoadOrCreate(context.Background(), userId)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, userId, sess.UserId)
	assert.Empty(t, sess.Context)
	assert.Equal(t, entity.SessionData{}, sess.Data)

	// A second load hits the same row, not a new one.
	again, err := m.LoadOrCreate(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, sess.Id, again.Id)
}

func TestPatchRoundTripShallowMerge(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	userId := uuid.New()
	ctx := context.Background()

	sess, err := m.LoadOrCreate(ctx, userId)
	require.NoError(t, err)

	max := 50.0
	m.Patch(ctx, sess, entity.SessionPatch{
		SearchParams: &entity.SearchParams{MaxPrice: &max},
	}, "user: show products under 50")

	flow := entity.FlowProductListing
	m.Patch(ctx, sess, entity.SessionPatch{
		CurrentFlow:  &flow,
		ProductDraft: &entity.ProductDraft{Stage: entity.ListingStageName},
	})

	// Reload straight from the backing rows, bypassing the cache.
	stored, err := repo.FindLatestByUser(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Untouched top-level keys survive; patched ones are the latest values.
	require.NotNil(t, stored.Data.SearchParams)
	assert.Equal(t, 50.0, *stored.Data.SearchParams.MaxPrice)
	assert.Equal(t, entity.FlowProductListing, stored.Data.CurrentFlow)
	require.NotNil(t, stored.Data.ProductDraft)
	assert.Contains(t, stored.Context, "user: show products under 50")
}

func TestPatchReplacesSubRecordWholesale(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	userId := uuid.New()
	ctx := context.Background()

	sess, err := m.LoadOrCreate(ctx, userId)
	require.NoError(t, err)

	m.Patch(ctx, sess, entity.SessionPatch{
		ProductDraft: &entity.ProductDraft{Stage: entity.ListingStageCategory, Name: "Tomatoes"},
	})
	// Patching the draft again replaces it wholesale; Name is gone because
	// the new record never set it.
	m.Patch(ctx, sess, entity.SessionPatch{
		ProductDraft: &entity.ProductDraft{Stage: entity.ListingStagePrice},
	})

	stored, err := repo.FindLatestByUser(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, stored.Data.ProductDraft)
	assert.Equal(t, entity.ListingStagePrice, stored.Data.ProductDraft.Stage)
	assert.Empty(t, stored.Data.ProductDraft.Name)
}

func TestPatchReplaysOnVersionConflict(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	userId := uuid.New()
	ctx := context.Background()

	sess, err := m.LoadOrCreate(ctx, userId)
	require.NoError(t, err)

	// A second tab writes first and bumps the stored version.
	other, err := repo.FindLatestByUser(ctx, userId)
	require.NoError(t, err)
	otherFlow := entity.FlowProductListing
	other.Data.Apply(entity.SessionPatch{CurrentFlow: &otherFlow})
	require.NoError(t, repo.UpdateCAS(ctx, other))

	// Our stale session patches; the manager reloads and replays.
	max := 25.0
	m.Patch(ctx, sess, entity.SessionPatch{
		SearchParams: &entity.SearchParams{MaxPrice: &max},
	})

	stored, err := repo.FindLatestByUser(ctx, userId)
	require.NoError(t, err)
	// Both writers' changes survive: no silent last-write-wins.
	assert.Equal(t, entity.FlowProductListing, stored.Data.CurrentFlow)
	require.NotNil(t, stored.Data.SearchParams)
	assert.Equal(t, 25.0, *stored.Data.SearchParams.MaxPrice)
}

func TestLoadOrCreateReturnsIndependentSessions(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	userId := uuid.New()
	ctx := context.Background()

	first, err := m.LoadOrCreate(ctx, userId)
	require.NoError(t, err)
	second, err := m.LoadOrCreate(ctx, userId)
	require.NoError(t, err)

	// Two tabs must not patch one object; each load gets its own copy and
	// the version check on update decides who wins.
	require.NotSame(t, first, second)

	first.Context = append(first.Context, "user: hello")
	first.Data.ProductDraft = &entity.ProductDraft{Stage: entity.ListingStageName}
	assert.Empty(t, second.Context)
	assert.Nil(t, second.Data.ProductDraft)
}

func TestConcurrentPatchesDoNotShareState(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	userId := uuid.New()
	ctx := context.Background()

	_, err := m.LoadOrCreate(ctx, userId)
	require.NoError(t, err)

	// Run under -race: each request loads its own copy and patches it, so
	// simultaneous turns from two tabs never write the same session object.
	var wg sync.WaitGroup
	flow := entity.FlowProductListing
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess, lerr := m.LoadOrCreate(ctx, userId)
			assert.NoError(t, lerr)
			m.Patch(ctx, sess, entity.SessionPatch{CurrentFlow: &flow},
				fmt.Sprintf("user: turn %d", n))
		}(i)
	}
	wg.Wait()

	stored, err := repo.FindLatestByUser(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.FlowProductListing, stored.Data.CurrentFlow)
	assert.NotZero(t, stored.Version)
}

func TestTranscriptIsBounded(t *testing.T) {
	repo := newFakeSessionRepo()
	m := newTestManager(repo)
	ctx := context.Background()

	sess, err := m.LoadOrCreate(ctx, uuid.New())
	require.NoError(t, err)

	for i := 0; i < maxTranscriptLines; i++ {
		m.Patch(ctx, sess, entity.SessionPatch{}, "user: hi", "bot: hello")
	}

	assert.Len(t, sess.Context, maxTranscriptLines)
	assert.Equal(t, "bot: hello", sess.Context[len(sess.Context)-1])
}
