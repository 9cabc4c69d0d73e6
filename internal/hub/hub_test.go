package hub

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/testutil"
)

type fakeConn struct {
	mu       sync.Mutex
	name     string
	received [][]byte
	dead     bool
	closed   bool
}

func newFakeConn(name string) *fakeConn {
	return &fakeConn{name: name}
}

func (c *fakeConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead || c.closed {
		return errors.New("connection closed")
	}
	c.received = append(c.received, payload)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.received))
	for i, m := range c.received {
		out[i] = string(m)
	}
	return out
}

func TestHub_RegisterUnregister_PrunesEmptyGroup(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	c := newFakeConn("a")

	require.NoError(t, h.Register(c, "F1"))
	assert.Equal(t, 1, h.Groups())
	assert.Equal(t, 1, h.Len("F1"))
	assert.True(t, h.Contains(c, "F1"))

	h.Unregister(c, "F1")
	assert.Equal(t, 0, h.Groups())
	assert.Equal(t, 0, h.Len("F1"))
	assert.False(t, h.Contains(c, "F1"))
}

func TestHub_Register_DuplicateIsRejected(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	c := newFakeConn("a")

	require.NoError(t, h.Register(c, "F1"))
	assert.ErrorIs(t, h.Register(c, "F1"), ErrAlreadyRegistered)
	assert.ErrorIs(t, h.Register(c, "F2"), ErrAlreadyRegistered)

	assert.Equal(t, 1, h.Len("F1"))
	assert.Equal(t, 0, h.Len("F2"))

	delivered := h.Broadcast("F1", []byte("x"))
	assert.Equal(t, 1, delivered)
	assert.Len(t, c.messages(), 1)
}

func TestHub_Unregister_UnknownOrWrongGroupIsIgnored(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	a := newFakeConn("a")
	b := newFakeConn("b")

	require.NoError(t, h.Register(a, "F1"))
	h.Unregister(b, "F1")
	h.Unregister(a, "F2")

	assert.True(t, h.Contains(a, "F1"))
	assert.Equal(t, 1, h.Groups())
}

func TestHub_Broadcast_IncludesSenderAndIsolatesGroups(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	a := newFakeConn("a")
	b := newFakeConn("b")
	c := newFakeConn("c")

	require.NoError(t, h.Register(a, "F1"))
	require.NoError(t, h.Register(b, "F1"))
	require.NoError(t, h.Register(c, "F2"))

	delivered := h.Broadcast("F1", []byte(`{"type":"update"}`))

	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{`{"type":"update"}`}, a.messages())
	assert.Equal(t, []string{`{"type":"update"}`}, b.messages())
	assert.Empty(t, c.messages())
}

func TestHub_Broadcast_PrunesDeadConnection(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	live := []*fakeConn{newFakeConn("a"), newFakeConn("b"), newFakeConn("c")}
	dead := newFakeConn("dead")
	dead.dead = true

	require.NoError(t, h.Register(live[0], "F1"))
	require.NoError(t, h.Register(dead, "F1"))
	require.NoError(t, h.Register(live[1], "F1"))
	require.NoError(t, h.Register(live[2], "F1"))

	delivered := h.Broadcast("F1", []byte("hello"))

	assert.Equal(t, 3, delivered)
	for _, c := range live {
		assert.Equal(t, []string{"hello"}, c.messages(), c.name)
		assert.True(t, h.Contains(c, "F1"))
	}
	assert.False(t, h.Contains(dead, "F1"))
	assert.Equal(t, 3, h.Len("F1"))
}

func TestHub_Broadcast_LastDeadConnectionRemovesGroup(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	dead := newFakeConn("dead")
	dead.dead = true

	require.NoError(t, h.Register(dead, "F1"))

	assert.Equal(t, 0, h.Broadcast("F1", []byte("x")))
	assert.Equal(t, 0, h.Groups())
}

func TestHub_Broadcast_EmptyGroup(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	assert.Equal(t, 0, h.Broadcast("nobody", []byte("x")))
	assert.Equal(t, 0, h.Groups())
}

func TestHub_BroadcastJSON(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	a := newFakeConn("a")
	require.NoError(t, h.Register(a, "F1"))

	n, err := h.BroadcastJSON("F1", map[string]string{"type": "ping"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{`{"type":"ping"}`}, a.messages())

	_, err = h.BroadcastJSON("F1", map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestHub_Close(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	a := newFakeConn("a")
	b := newFakeConn("b")
	require.NoError(t, h.Register(a, "F1"))
	require.NoError(t, h.Register(b, "F2"))

	h.Close()

	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestHub_RegisterAfterClose(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	assert.False(t, h.Closed())

	h.Close()
	assert.True(t, h.Closed())

	late := newFakeConn("late")
	err := h.Register(late, "F1")
	require.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, h.Groups())
	assert.False(t, h.Contains(late, "F1"))
}

func TestHub_ConcurrentAccess(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	const workers = 16
	const rounds = 50

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			family := fmt.Sprintf("F%d", w%4)
			for r := range rounds {
				c := newFakeConn(fmt.Sprintf("%d-%d", w, r))
				if err := h.Register(c, family); err != nil {
					t.Errorf("register: %v", err)
					return
				}
				h.Broadcast(family, []byte("tick"))
				h.Unregister(c, family)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, h.Groups())
}

func TestHub_UnregisterDuringBroadcast(t *testing.T) {
	h := New(testutil.MakeNoopLogger())
	blocker := &blockingConn{release: make(chan struct{}), entered: make(chan struct{})}
	other := newFakeConn("other")

	require.NoError(t, h.Register(blocker, "F1"))
	require.NoError(t, h.Register(other, "F1"))

	done := make(chan int)
	go func() { done <- h.Broadcast("F1", []byte("x")) }()

	<-blocker.entered
	// The map lock is not held while sending.
	h.Unregister(other, "F1")
	assert.False(t, h.Contains(other, "F1"))
	close(blocker.release)

	assert.Equal(t, 2, <-done)
	assert.Equal(t, 1, h.Len("F1"))
}

type blockingConn struct {
	entered chan struct{}
	release chan struct{}
}

func (c *blockingConn) Send([]byte) error {
	close(c.entered)
	<-c.release
	return nil
}

func (c *blockingConn) Close() error { return nil }
