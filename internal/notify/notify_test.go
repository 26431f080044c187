package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestNotifierDeliversToWebhook(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		var e Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			t.Errorf("failed to decode event: %v", err)
		}
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := New(srv.URL)
	n.Enqueue(Event{Kind: KindQuoteSubmitted, QuoteID: 1, QuoteNumber: "Q-1000"})
	n.Enqueue(Event{Kind: KindQuoteWon, QuoteID: 1, QuoteNumber: "Q-1000"})
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("delivered %d events, want 2", len(received))
	}
	if received[0].Kind != KindQuoteSubmitted || received[1].Kind != KindQuoteWon {
		t.Errorf("events delivered out of order: %s, %s", received[0].Kind, received[1].Kind)
	}
	if received[0].ID == "" {
		t.Error("event ID must be assigned on enqueue")
	}
	if received[0].OccurredAt.IsZero() {
		t.Error("occurred_at must be stamped on enqueue")
	}
	if received[0].ID == received[1].ID {
		t.Error("event IDs must be distinct")
	}
}

func TestNotifierRetriesOnce(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		first := attempts == 1
		mu.Unlock()
		if first {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := New(srv.URL)
	n.retryDelay = 10 * time.Millisecond
	n.Enqueue(Event{Kind: KindQuoteSubmitted, QuoteID: 1, QuoteNumber: "Q-1000"})
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Fatalf("webhook attempts = %d, want 2", attempts)
	}
}

func TestNotifierEnqueueAfterCloseIsSafe(t *testing.T) {
	n := New("")
	n.Close()
	// Must not panic or block.
	n.Enqueue(Event{Kind: KindQuoteSubmitted, QuoteNumber: "Q-1001"})
	n.Close()
}

func TestNotifierToleratesSlowWebhook(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL)
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueDepth*2; i++ {
			n.Enqueue(Event{Kind: KindQuoteSubmitted, QuoteID: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Enqueue blocked on a slow webhook")
	}
	close(release)
	n.Close()
}
