package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "test")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	payload, _ := json.Marshal(map[string]string{"id": "d-1"})
	if err := store.Enqueue(Item{
		UserID:    "u-1",
		Entity:    EntityDonation,
		Operation: OperationCreate,
		Data:      payload,
	}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	items, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("get batch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Entity != EntityDonation || items[0].Operation != OperationCreate {
		t.Errorf("item = %+v", items[0])
	}
	if items[0].ID == "" {
		t.Error("id not assigned on enqueue")
	}
}

func TestPriorityOrdering(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i, priority := range []int{5, 1, 3} {
		if err := store.Enqueue(Item{
			Entity:    EntityProfile,
			Operation: OperationUpdate,
			Data:      json.RawMessage(`{}`),
			Priority:  priority,
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	items, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("get batch failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Priority != 1 || items[1].Priority != 3 || items[2].Priority != 5 {
		t.Errorf("order = %d,%d,%d; want 1,3,5", items[0].Priority, items[1].Priority, items[2].Priority)
	}
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{Entity: EntityDonation, Operation: OperationUpdate, Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	items, _ := store.GetBatch(1)
	if err := store.Remove(items[0]); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("size failed: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
}

func TestRequeueBumpsTimestamp(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-time.Hour)
	if err := store.Enqueue(Item{
		ID:        "item-1",
		Entity:    EntityDonation,
		Operation: OperationUpdate,
		Data:      json.RawMessage(`{}`),
		Timestamp: old,
	}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	items, _ := store.GetBatch(1)
	items[0].Retries = 1
	if err := store.Remove(items[0]); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := store.Requeue(items[0]); err != nil {
		t.Fatalf("requeue failed: %v", err)
	}

	requeued, _ := store.GetBatch(1)
	if len(requeued) != 1 {
		t.Fatalf("got %d items after requeue", len(requeued))
	}
	if !requeued[0].Timestamp.After(old) {
		t.Error("timestamp not bumped")
	}
	if requeued[0].Retries != 1 {
		t.Errorf("retries = %d, want 1", requeued[0].Retries)
	}
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	stale := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()

	_ = store.Enqueue(Item{Entity: EntityDonation, Operation: OperationCreate, Data: json.RawMessage(`{}`), Timestamp: stale})
	_ = store.Enqueue(Item{Entity: EntityDonation, Operation: OperationCreate, Data: json.RawMessage(`{}`), Timestamp: fresh})

	if err := store.Cleanup(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	size, _ := store.Size()
	if size != 1 {
		t.Errorf("size after cleanup = %d, want 1", size)
	}
}
