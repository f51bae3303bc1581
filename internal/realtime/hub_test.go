package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub()
	go h.Run(ctx)
	return h
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.Send:
		var m Message
		require.NoError(t, json.Unmarshal(raw, &m))
		return m
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Message{}
	}
}

func TestSendToUser(t *testing.T) {
	h := runHub(t)

	alice := NewClient("a1", 1)
	aliceTab := NewClient("a2", 1)
	bob := NewClient("b1", 2)
	h.RegisterClient(alice)
	h.RegisterClient(aliceTab)
	h.RegisterClient(bob)

	require.Eventually(t, func() bool { return h.Connected(1) == 2 }, time.Second, 10*time.Millisecond)

	h.SendToUser(1, Message{Type: "application_status_update", Data: map[string]string{"status": "approved"}})

	assert.Equal(t, "application_status_update", receive(t, alice).Type)
	assert.Equal(t, "application_status_update", receive(t, aliceTab).Type)
	select {
	case <-bob.Send:
		t.Fatal("bob must not receive alice's message")
	default:
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := runHub(t)

	c := NewClient("c1", 9)
	h.RegisterClient(c)
	h.UnregisterClient(c)

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
	assert.Zero(t, h.Connected(9))
}

func TestSendToUserSkipsFullBuffer(t *testing.T) {
	h := runHub(t)

	c := &Client{ID: "slow", UserID: 3, Send: make(chan []byte, 1)}
	h.RegisterClient(c)
	require.Eventually(t, func() bool { return h.Connected(3) == 1 }, time.Second, 10*time.Millisecond)

	h.SendToUser(3, Message{Type: "first"})
	h.SendToUser(3, Message{Type: "second"})

	assert.Equal(t, "first", receive(t, c).Type)
	assert.Len(t, c.Send, 0)
}

func TestBroadcast(t *testing.T) {
	h := runHub(t)

	a, b := NewClient("a", 1), NewClient("b", 2)
	h.RegisterClient(a)
	h.RegisterClient(b)
	h.BroadcastJSON(Message{Type: "maintenance"})

	assert.Equal(t, "maintenance", receive(t, a).Type)
	assert.Equal(t, "maintenance", receive(t, b).Type)
}
