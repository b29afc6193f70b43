package memory

import (
	"sync"
	"time"

	"paraphrase-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl after their last access and
// purges expired ones every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

// Get returns the session and extends its lifetime.
func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		s := x.(*store.Session)
		r.cache.Set(sessionID, s, cache.DefaultExpiration)
		return s, true
	}
	return nil, false
}

// GetOrCreate returns the cached session or stores the one built by build.
// Concurrent callers for the same id share a single build.
func (r *SessionRepository) GetOrCreate(sessionID string, build func() (*store.Session, error)) (*store.Session, error) {
	if s, ok := r.Get(sessionID); ok {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.Get(sessionID); ok {
		return s, nil
	}
	s, err := build()
	if err != nil {
		return nil, err
	}
	r.Save(s)
	return s, nil
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
