package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"paraphrase-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRepository(t *testing.T) {
	ctx := context.Background()
	r := NewStateRepository(0)

	_, ok, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"context":true}`)
	require.NoError(t, r.Set(ctx, "k1", value))
	require.NoError(t, r.Set(ctx, "k2", []byte(`{}`)))

	// callers cannot mutate stored bytes
	value[0] = 'X'
	got, ok, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"context":true}`, string(got))

	require.NoError(t, r.Delete(ctx, "k1", "k2", "never-set"))
	_, ok, _ = r.Get(ctx, "k2")
	assert.False(t, ok)
}

func TestStateRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	r := NewStateRepository(20 * time.Millisecond)
	require.NoError(t, r.Set(ctx, "k", []byte(`{}`)))

	_, ok, _ := r.Get(ctx, "k")
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok, _ := r.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStateRepository_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultStateTTL, NewStateRepository(0).ttl)
}

func TestSessionRepository_GetOrCreate(t *testing.T) {
	r := NewSessionRepository(time.Minute)

	var builds atomic.Int32
	build := func() (*store.Session, error) {
		builds.Add(1)
		return &store.Session{ID: "s1", CreatedAt: time.Now()}, nil
	}

	var wg sync.WaitGroup
	results := make([]*store.Session, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.GetOrCreate("s1", build)
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, 1, r.Count())
}

func TestSessionRepository_BuildError(t *testing.T) {
	r := NewSessionRepository(time.Minute)
	boom := errors.New("store unavailable")

	_, err := r.GetOrCreate("s1", func() (*store.Session, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := r.Get("s1")
	assert.False(t, ok)
}

func TestSessionRepository_Expiry(t *testing.T) {
	r := NewSessionRepository(20 * time.Millisecond)
	r.Save(&store.Session{ID: "s1"})

	_, ok := r.Get("s1")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = r.Get("s1")
	assert.False(t, ok)

	r.Save(&store.Session{ID: "s2"})
	r.Delete("s2")
	_, ok = r.Get("s2")
	assert.False(t, ok)
}
