package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/searchworks/bm25-retrieval/pkg/kafka"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (f *fakePublisher) Publish(_ context.Context, event kafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestCollectorPublishesTrackedEvents(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 16)
	c.Start(context.Background())

	for i := 0; i < 5; i++ {
		c.Track(SearchEvent{
			Type:      EventSearch,
			Query:     "cat",
			Timestamp: time.Now().UTC(),
		})
	}
	c.Close()

	if got := pub.count(); got != 5 {
		t.Errorf("published %d events, want 5", got)
	}
}

func TestCollectorDropsWhenFull(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 2)
	// Not started: nothing consumes the channel, so the third Track must
	// drop instead of blocking.
	for i := 0; i < 3; i++ {
		c.Track(SearchEvent{Type: EventSearch})
	}
	done := make(chan struct{})
	go func() {
		c.Start(context.Background())
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not shut down")
	}
	if got := pub.count(); got != 2 {
		t.Errorf("published %d events, want 2 (one dropped)", got)
	}
}

func TestCollectorDrainsOnCancel(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 16)

	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < 4; i++ {
		c.Track(SearchEvent{Type: EventCacheMiss})
	}
	c.Start(ctx)
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for pub.count() < 4 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := pub.count(); got != 4 {
		t.Errorf("published %d events after cancel, want 4", got)
	}
}
