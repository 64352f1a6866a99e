package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := testHub()
	c := NewClient(hub, nil, 1)

	hub.Register(c)
	if got := hub.ClientCount(1); got != 1 {
		t.Errorf("client count = %d, want 1", got)
	}

	hub.Unregister(c)
	if got := hub.ClientCount(1); got != 0 {
		t.Errorf("client count after unregister = %d, want 0", got)
	}

	// Unregistering twice must not panic or double-close the channel.
	hub.Unregister(c)
}

func TestBroadcastScopedToFamily(t *testing.T) {
	hub := testHub()
	mine := NewClient(hub, nil, 1)
	other := NewClient(hub, nil, 2)
	hub.Register(mine)
	hub.Register(other)

	hub.Broadcast(1, NewMessage("submission", "approved", 42, nil))

	select {
	case data := <-mine.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != "submission_approved" || msg.ID != 42 {
			t.Errorf("message = %+v", msg)
		}
	default:
		t.Fatal("client in family 1 received nothing")
	}

	select {
	case <-other.send:
		t.Fatal("client in family 2 received another family's message")
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := testHub()
	c := NewClient(hub, nil, 1)
	hub.Register(c)

	for i := 0; i < sendBufferSize+10; i++ {
		hub.Broadcast(1, NewMessage("task", "updated", int64(i), nil))
	}

	if got := len(c.send); got != sendBufferSize {
		t.Errorf("buffered = %d, want %d", got, sendBufferSize)
	}
}
