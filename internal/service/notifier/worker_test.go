package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
	"github.com/vladislavdragonenkov/atelier/internal/storage/memory"
	"github.com/vladislavdragonenkov/atelier/internal/store"
)

func newRepoWithDueOrders(t *testing.T, now time.Time, dueDates ...string) domain.OrderRepository {
	t.Helper()

	repo := store.NewOrderStore(memory.NewKVStorage(), store.WithClock(func() time.Time {
		return now
	}))
	for _, due := range dueDates {
		if _, err := repo.Create(domain.Order{
			CustomerName:  "Jane Doe",
			ContactNumber: "5551234567",
			ItemDetails:   "Blue gown",
			DueDate:       due,
		}); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	return repo
}

func TestWorker_Poll(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := newRepoWithDueOrders(t, now, "2025-06-10", "2025-06-11", "2025-06-20")

	w := NewWorker(repo, WithLogger(log.WithField("test", "poll")))

	count, err := w.Poll()
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 urgent orders, got %d", count)
	}
}

func TestWorker_PollCorruptDataCountsAsZero(t *testing.T) {
	kv := memory.NewKVStorage()
	if err := kv.Write(context.Background(), domain.OrdersKey, []byte("oops")); err != nil {
		t.Fatalf("seed corrupt data: %v", err)
	}
	repo := store.NewOrderStore(kv)

	w := NewWorker(repo)
	count, err := w.Poll()
	if !errors.Is(err, domain.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero urgent orders, got %d", count)
	}
}

func TestWorker_RunStopsOnContextCancel(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := newRepoWithDueOrders(t, now, "2025-06-10")

	w := NewWorker(repo, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}

	if w.lastCount != 1 {
		t.Fatalf("expected last observed count 1, got %d", w.lastCount)
	}
}

func TestNewWorker_Defaults(t *testing.T) {
	w := NewWorker(nil)

	if w.interval != defaultPollInterval {
		t.Fatalf("expected default interval, got %v", w.interval)
	}

	// nil-репозиторий: Run должен выйти сразу, без паники.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)
}
