package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeConn is an in-memory Conn. ReadMessage blocks until Close is called,
// mimicking an idle subscriber that only listens.
type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	<-c.closed
	return 0, nil, errors.New("connection closed")
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return errors.New("connection closed")
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	c.written = append(c.written, cp)
	return nil
}

func (c *fakeConn) SetReadLimit(int64)                {}
func (c *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (c *fakeConn) SetPongHandler(func(string) error) {}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) messages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.written))
	copy(out, c.written)
	return out
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(newFakeConn())
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice is safe.
	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	conns := []*fakeConn{newFakeConn(), newFakeConn()}
	for _, conn := range conns {
		client, err := hub.Register(conn)
		require.NoError(t, err)
		go client.WritePump()
	}

	hub.Publish(Event{Type: EventPostLiked, PostID: 7, Actor: "alice"})

	for _, conn := range conns {
		conn := conn
		waitFor(t, func() bool { return len(conn.messages()) == 1 })

		var event Event
		require.NoError(t, json.Unmarshal(conn.messages()[0], &event))
		assert.Equal(t, EventPostLiked, event.Type)
		assert.Equal(t, int64(7), event.PostID)
		assert.Equal(t, "alice", event.Actor)
	}

	require.NoError(t, hub.Shutdown(context.Background()))
	for _, conn := range conns {
		conn := conn
		waitFor(t, func() bool {
			select {
			case <-conn.closed:
				return true
			default:
				return false
			}
		})
	}
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()

	// No write pump running, so the send buffer fills and further events
	// are dropped without blocking Publish.
	client, err := hub.Register(newFakeConn())
	require.NoError(t, err)

	for i := 0; i < cap(client.send)+10; i++ {
		hub.Publish(Event{Type: EventPostCreated})
	}
	assert.Len(t, client.send, cap(client.send))

	hub.Unregister(client)
}

func TestHub_ReadPumpUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()

	conn := newFakeConn()
	client, err := hub.Register(conn)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		client.ReadPump()
		close(done)
	}()

	require.NoError(t, conn.Close())
	<-done
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_RejectsRegistrationAfterShutdown(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Shutdown(context.Background()))

	_, err := hub.Register(newFakeConn())
	assert.Error(t, err)

	// Publishing after shutdown is a no-op.
	hub.Publish(Event{Type: EventPostShared})
}
