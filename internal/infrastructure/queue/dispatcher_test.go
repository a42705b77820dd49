package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

type stubStore struct {
	mu      sync.Mutex
	written []domain.StatusChange
	failFor int64
	block   chan struct{}
}

func (s *stubStore) Insert(_ context.Context, change *domain.StatusChange) error {
	if s.block != nil {
		<-s.block
	}
	if change.RequestID == s.failFor {
		return errors.New("write failed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, *change)
	return nil
}

func (s *stubStore) ListByRequest(context.Context, int64) ([]domain.StatusChange, error) {
	return nil, nil
}

func (s *stubStore) snapshot() []domain.StatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StatusChange(nil), s.written...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_PerRequestOrdering(t *testing.T) {
	store := &stubStore{}
	d := NewDispatcher(3, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	statuses := []domain.TravelStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusPending, domain.StatusApproved}
	for _, s := range statuses {
		d.Enqueue(domain.StatusChange{RequestID: 7, To: s})
		d.Enqueue(domain.StatusChange{RequestID: 8, To: s})
	}

	waitFor(t, func() bool { return len(store.snapshot()) == 2*len(statuses) })
	cancel()
	d.Wait()

	var got []domain.TravelStatus
	for _, c := range store.snapshot() {
		if c.RequestID == 7 {
			got = append(got, c.To)
		}
	}
	for i := range statuses {
		if got[i] != statuses[i] {
			t.Fatalf("request 7 written out of order: %v", got)
		}
	}
}

func TestDispatcher_FailedWriteDoesNotStopWorker(t *testing.T) {
	store := &stubStore{failFor: 1}
	d := NewDispatcher(1, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.StatusChange{RequestID: 1})
	d.Enqueue(domain.StatusChange{RequestID: 2})

	waitFor(t, func() bool { return len(store.snapshot()) == 1 })
	if store.snapshot()[0].RequestID != 2 {
		t.Fatalf("unexpected write: %+v", store.snapshot())
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	store := &stubStore{block: make(chan struct{})}
	d := NewDispatcher(1, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.StatusChange{RequestID: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}

	close(store.block)
	cancel()
	d.Wait()
}

func TestDispatcher_ShardIndex(t *testing.T) {
	d := NewDispatcher(0, &stubStore{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex(5) != d.shardIndex(5) || d.shardIndex(-5) < 0 {
		t.Fatalf("shard index must be deterministic and non-negative")
	}
}
