package chathub_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"lecturehub/backend/internal/chathub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesWholeRoomOnly(t *testing.T) {
	r := chathub.NewRegistry()

	a := newMockClient(1, 2, "chat_room_1_2")
	b := newMockClient(2, 1, "chat_room_1_2")
	outsider := newMockClient(3, 4, "chat_room_3_4")
	r.Join(a.Room(), a)
	r.Join(b.Room(), b)
	r.Join(outsider.Room(), outsider)

	r.Broadcast("chat_room_1_2", []byte("hello"))

	assert.Equal(t, []byte("hello"), a.receive(0), "sender's own socket receives the echo")
	assert.Equal(t, []byte("hello"), b.receive(0))
	assert.Empty(t, outsider.drain(), "other rooms must not see the message")
}

func TestLeavePrunesEmptyRoom(t *testing.T) {
	r := chathub.NewRegistry()
	a := newMockClient(1, 2, "chat_room_1_2")
	b := newMockClient(2, 1, "chat_room_1_2")

	r.Join(a.Room(), a)
	r.Join(b.Room(), b)
	assert.Equal(t, 2, r.Count("chat_room_1_2"))

	r.Leave(a.Room(), a)
	assert.Equal(t, 1, r.Count("chat_room_1_2"))

	r.Leave(b.Room(), b)
	assert.Equal(t, 0, r.Count("chat_room_1_2"))

	// Broadcasting into a pruned room is a no-op, not an error.
	r.Broadcast("chat_room_1_2", []byte("nobody home"))
}

func TestPublishBroadcastsInPersistOrder(t *testing.T) {
	r := chathub.NewRegistry()
	a := newMockClient(1, 2, "chat_room_1_2")
	r.Join(a.Room(), a)

	// Two competing senders; the shared counter stands in for the write
	// order the message log assigns.
	var mu sync.Mutex
	var seq int

	var wg sync.WaitGroup
	const perSender = 10
	for sender := 0; sender < 2; sender++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				r.Publish("chat_room_1_2", func() ([]byte, error) {
					mu.Lock()
					seq++
					n := seq
					mu.Unlock()
					return json.Marshal(n)
				})
			}
		}()
	}
	wg.Wait()

	frames := a.drain()
	require.Len(t, frames, 2*perSender)
	prev := 0
	for _, payload := range frames {
		var n int
		require.NoError(t, json.Unmarshal(payload, &n))
		assert.Greater(t, n, prev, "delivery order must match persist order")
		prev = n
	}
}

func TestPublishSkipsFanOutOnPersistError(t *testing.T) {
	r := chathub.NewRegistry()
	a := newMockClient(1, 2, "chat_room_1_2")
	r.Join(a.Room(), a)

	err := r.Publish("chat_room_1_2", func() ([]byte, error) {
		return nil, fmt.Errorf("write failed")
	})
	assert.Error(t, err)
	assert.Empty(t, a.drain())
}

func TestPublishPersistsWithEmptyRoom(t *testing.T) {
	r := chathub.NewRegistry()

	persisted := false
	err := r.Publish("chat_room_1_2", func() ([]byte, error) {
		persisted = true
		return []byte("x"), nil
	})
	require.NoError(t, err)
	assert.True(t, persisted, "a message still persists when nobody is connected")
}

func TestConcurrentJoinLeaveBroadcast(t *testing.T) {
	r := chathub.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			room := fmt.Sprintf("chat_room_%d_%d", n, n+1)
			c := newMockClient(uint(n), uint(n+1), room)
			for j := 0; j < 50; j++ {
				r.Join(room, c)
				r.Broadcast(room, []byte("ping"))
				r.Leave(room, c)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		assert.Equal(t, 0, r.Count(fmt.Sprintf("chat_room_%d_%d", i, i+1)))
	}
}
