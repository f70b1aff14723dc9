package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
	"github.com/vladislavdragonenkov/atelier/internal/storage/memory"
	"github.com/vladislavdragonenkov/atelier/internal/store"
)

// fixedClock возвращает хранилище заказов с "сегодня" = 2025-06-10 12:00 UTC.
func newOrderStoreAt(t *testing.T, now time.Time) *store.OrderStore {
	t.Helper()
	return store.NewOrderStore(memory.NewKVStorage(), store.WithClock(func() time.Time {
		return now
	}))
}

func newOrderFields(dueDate string) domain.Order {
	return domain.Order{
		CustomerName:  "Jane Doe",
		ContactNumber: "5551234567",
		ItemDetails:   "Blue gown",
		DueDate:       dueDate,
	}
}

func TestOrderStore_CreateDefaultsToPending(t *testing.T) {
	s := store.NewOrderStore(memory.NewKVStorage())

	created, err := s.Create(newOrderFields("2025-06-01"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatal("expected assigned id and timestamps")
	}
}

func TestOrderStore_CreateGetRoundTrip(t *testing.T) {
	s := store.NewOrderStore(memory.NewKVStorage())

	fields := newOrderFields("2025-06-01")
	fields.CustomerID = "customer-1"
	fields.Images = []string{"sketch-1.png"}

	created, err := s.Create(fields)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerName != "Jane Doe" || stored.ItemDetails != "Blue gown" || stored.DueDate != "2025-06-01" {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
	if stored.CustomerID != "customer-1" {
		t.Fatalf("customer back-reference lost: %+v", stored)
	}
	if len(stored.Images) != 1 || stored.Images[0] != "sketch-1.png" {
		t.Fatalf("images lost in round trip: %v", stored.Images)
	}
}

func TestOrderStore_StatusTransitionsAreUnrestricted(t *testing.T) {
	s := store.NewOrderStore(memory.NewKVStorage())

	created, err := s.Create(newOrderFields("2025-06-01"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// pending -> completed -> pending: терминального состояния нет.
	completed := domain.OrderStatusCompleted
	if _, err := s.Update(created.ID, domain.OrderPatch{Status: &completed}); err != nil {
		t.Fatalf("update to completed failed: %v", err)
	}

	pending := domain.OrderStatusPending
	reopened, err := s.Update(created.ID, domain.OrderPatch{Status: &pending})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Status != domain.OrderStatusPending {
		t.Fatalf("expected reopened order to be pending, got %q", reopened.Status)
	}
	if reopened.CustomerName != created.CustomerName {
		t.Fatal("status patch must not touch other fields")
	}
}

func TestOrderStore_DueToday(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s := newOrderStoreAt(t, now)

	if _, err := s.Create(newOrderFields("2025-06-09")); err != nil { // вчера
		t.Fatalf("create failed: %v", err)
	}
	today, err := s.Create(newOrderFields("2025-06-10"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(newOrderFields("2025-06-11")); err != nil { // завтра
		t.Fatalf("create failed: %v", err)
	}

	due, err := s.DueToday()
	if err != nil {
		t.Fatalf("dueToday failed: %v", err)
	}
	if len(due) != 1 || due[0].ID != today.ID {
		t.Fatalf("expected exactly the today order, got %v", due)
	}

	// Завершённый заказ выпадает из выборки.
	completed := domain.OrderStatusCompleted
	if _, err := s.Update(today.ID, domain.OrderPatch{Status: &completed}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	due, err = s.DueToday()
	if err != nil {
		t.Fatalf("dueToday failed: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected empty dueToday after completion, got %v", due)
	}
}

func TestOrderStore_DueSoonWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC)
	s := newOrderStoreAt(t, now)

	today, err := s.Create(newOrderFields("2025-06-10"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	tomorrow, err := s.Create(newOrderFields("2025-06-11"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(newOrderFields("2025-06-12")); err != nil { // послезавтра
		t.Fatalf("create failed: %v", err)
	}

	due, err := s.DueSoon()
	if err != nil {
		t.Fatalf("dueSoon failed: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected today and tomorrow orders, got %d", len(due))
	}
	ids := map[string]bool{due[0].ID: true, due[1].ID: true}
	if !ids[today.ID] || !ids[tomorrow.ID] {
		t.Fatalf("dueSoon picked wrong orders: %v", due)
	}
}

func TestOrderStore_DueQueriesOnCorruptDataServeEmpty(t *testing.T) {
	kv := memory.NewKVStorage()
	if err := kv.Write(context.Background(), domain.OrdersKey, []byte("][")); err != nil {
		t.Fatalf("seed corrupt data: %v", err)
	}

	s := store.NewOrderStore(kv)
	due, err := s.DueSoon()
	if !errors.Is(err, domain.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected empty result, got %v", due)
	}
}

func TestOrderStore_DeleteMissingLeavesCollectionUntouched(t *testing.T) {
	kv := memory.NewKVStorage()
	s := store.NewOrderStore(kv)

	if _, err := s.Create(newOrderFields("2025-06-01")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	before, _ := kv.Read(context.Background(), domain.OrdersKey)
	removed, err := s.Delete("never-existed")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed {
		t.Fatal("expected false for unknown id")
	}
	after, _ := kv.Read(context.Background(), domain.OrdersKey)
	if string(before) != string(after) {
		t.Fatal("delete of unknown id must leave persisted content unchanged")
	}
}

func TestOrderStore_UpdateMissingReturnsNotFound(t *testing.T) {
	s := store.NewOrderStore(memory.NewKVStorage())

	status := domain.OrderStatusInProgress
	if _, err := s.Update("missing", domain.OrderPatch{Status: &status}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
