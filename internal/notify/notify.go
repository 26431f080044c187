// Package notify delivers quote lifecycle events to an external webhook.
// Delivery is best-effort: events are queued in memory and a single worker
// posts them in order. A full queue drops the event rather than blocking
// the request path.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds emitted by the quoting app.
const (
	KindQuoteSubmitted = "quote.submitted"
	KindQuoteWon       = "quote.won"
	KindQuoteLost      = "quote.lost"
	KindFollowUpSet    = "quote.follow_up_set"
)

// Event is a single notification payload.
type Event struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	QuoteID       int       `json:"quote_id"`
	QuoteNumber   string    `json:"quote_number"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	GrandTotal    string    `json:"grand_total,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier owns the queue and the delivery worker. A Notifier constructed
// with an empty webhook URL logs events instead of posting them, so callers
// never need to nil-check.
type Notifier struct {
	webhookURL string
	client     *http.Client
	events     chan Event
	retryDelay time.Duration
	wg         sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

const queueDepth = 256

// New starts the delivery worker and returns the Notifier.
func New(webhookURL string) *Notifier {
	n := &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		events:     make(chan Event, queueDepth),
		retryDelay: 2 * time.Second,
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Enqueue queues an event for delivery. It never blocks: if the queue is
// full or the notifier is closed, the event is dropped and logged.
func (n *Notifier) Enqueue(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		log.Printf("notify: dropped %s for %s (notifier closed)", e.Kind, e.QuoteNumber)
		return
	}
	select {
	case n.events <- e:
	default:
		log.Printf("notify: dropped %s for %s (queue full)", e.Kind, e.QuoteNumber)
	}
}

// Close stops accepting events, drains the queue, and waits for the worker.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.events)
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for e := range n.events {
		n.deliver(e)
	}
}

func (n *Notifier) deliver(e Event) {
	if n.webhookURL == "" {
		log.Printf("notify: %s %s (no webhook configured)", e.Kind, e.QuoteNumber)
		return
	}

	body, err := json.Marshal(e)
	if err != nil {
		log.Printf("notify: failed to encode %s: %v", e.Kind, err)
		return
	}

	// One retry after a short pause, then give up.
	if err := n.post(body); err != nil {
		log.Printf("notify: delivery of %s failed, retrying: %v", e.Kind, err)
		time.Sleep(n.retryDelay)
		if err := n.post(body); err != nil {
			log.Printf("notify: delivery of %s failed: %v", e.Kind, err)
		}
	}
}

func (n *Notifier) post(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
