package websocket

import (
	"context"
	"testing"
	"time"

	"paraphrase-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	h := NewHub(nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	return h, cancel
}

func newClient(h *Hub, sid string) *Client {
	return &Client{Hub: h, SessionID: sid, Send: make(chan []byte, 2)}
}

func TestHub_SendTargetsSession(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	a := newClient(h, "a")
	b := newClient(h, "b")
	require.True(t, h.Register(a))
	require.True(t, h.Register(b))
	require.Eventually(t, func() bool { return h.Connected("a") == 1 && h.Connected("b") == 1 }, time.Second, 5*time.Millisecond)

	h.Send("a", []byte(`{"type":"REWRITE_STARTED"}`))

	assert.Equal(t, `{"type":"REWRITE_STARTED"}`, string(<-a.Send))
	assert.Empty(t, b.Send)
}

func TestHub_FullBufferDropsWithoutClosing(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	c := newClient(h, "s")
	require.True(t, h.Register(c))
	require.Eventually(t, func() bool { return h.Connected("s") == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		h.Send("s", []byte("x"))
	}
	assert.Len(t, c.Send, 2)
	assert.Equal(t, 1, h.Connected("s"))
}

func TestHub_Unregister(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	c := newClient(h, "s")
	require.True(t, h.Register(c))
	h.Unregister(c)

	require.Eventually(t, func() bool { return h.Connected("s") == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	h, cancel := startHub(t)

	c := newClient(h, "s")
	require.True(t, h.Register(c))
	cancel()

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on shutdown")
	}

	<-h.done
	assert.False(t, h.Register(newClient(h, "late")))
	h.Unregister(c)
}
