package memory

import (
	"time"

	"farmmarket-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionCache keeps hot chat sessions in memory so a turn does not hit the
// database for every lookup. The database stays the source of truth; entries
// here are invalidated on version conflicts.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Sessions idle for 30 minutes fall out; expired items are purged
	// every 10 minutes
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

// Save stores a snapshot of the session. The entry is cloned on the way in
// and on the way out so callers never share a mutable object through the
// cache; concurrent patches for one user each work on their own copy and the
// version check settles the write.
func (r *SessionCache) Save(session *entity.ChatSession) {
	r.cache.Set(session.UserId.String(), session.Clone(), cache.DefaultExpiration)
}

func (r *SessionCache) Get(userId uuid.UUID) (*entity.ChatSession, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.ChatSession).Clone(), true
	}
	return nil, false
}

func (r *SessionCache) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
