package memory

import (
	"context"
	"time"

	"paraphrase-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// DefaultStateTTL bounds how long an untouched record is kept. Every write
// refreshes it.
const DefaultStateTTL = 30 * 24 * time.Hour

// StateRepository keeps durable wizard records in process memory. They
// outlive the session registry but not a restart, and are evicted after ttl
// without writes.
type StateRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ contract.StateRepository = (*StateRepository)(nil)

func NewStateRepository(ttl time.Duration) *StateRepository {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &StateRepository{cache: cache.New(ttl, time.Hour), ttl: ttl}
}

func (r *StateRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	if x, found := r.cache.Get(key); found {
		return append([]byte(nil), x.([]byte)...), true, nil
	}
	return nil, false, nil
}

func (r *StateRepository) Set(_ context.Context, key string, value []byte) error {
	r.cache.Set(key, append([]byte(nil), value...), r.ttl)
	return nil
}

func (r *StateRepository) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		r.cache.Delete(k)
	}
	return nil
}
