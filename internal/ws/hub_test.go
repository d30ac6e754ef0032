package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEncodeEvent_RetrainedFrame(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b, err := encodeEvent(ModelRetrainedEvent{Version: "20250601_120000", F1: 0.91}, at)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var frame struct {
		Type      string `json:"type"`
		Timestamp string `json:"timestamp"`
		Event     struct {
			Version string  `json:"version"`
			F1      float64 `json:"f1_score"`
		} `json:"event"`
	}
	if err := json.Unmarshal(b, &frame); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if frame.Type != "model_retrained" {
		t.Fatalf("type = %q", frame.Type)
	}
	if frame.Timestamp != "2025-06-01T12:00:00Z" {
		t.Fatalf("timestamp = %q", frame.Timestamp)
	}
	if frame.Event.Version != "20250601_120000" || frame.Event.F1 != 0.91 {
		t.Fatalf("event = %+v", frame.Event)
	}
}

func TestHub_BroadcastReachesSubscribers(t *testing.T) {
	h := NewHub(nil)
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(client)

	deadline := time.After(2 * time.Second)
	for h.ClientCount() != 1 {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	h.Broadcast(ModelReloadedEvent{ModelLoaded: true})

	select {
	case frame := <-client.send:
		var got struct {
			Type  string `json:"type"`
			Event struct {
				ModelLoaded bool `json:"model_loaded"`
			} `json:"event"`
		}
		if err := json.Unmarshal(frame, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Type != "model_reloaded" || !got.Event.ModelLoaded {
			t.Fatalf("frame = %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestHub_NilReceiversAreSafe(t *testing.T) {
	var h *Hub
	h.Broadcast(ModelRetrainedEvent{})
	h.Register(nil)
	h.Unregister(nil)
	if h.ClientCount() != 0 {
		t.Fatal("nil hub reports clients")
	}
}
