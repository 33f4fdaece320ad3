package room

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jcmexdev/quickbite/internal/domain"
	"github.com/jcmexdev/quickbite/internal/roomstore"
)

func testMenu() []domain.MenuItem {
	return []domain.MenuItem{{Name: "Fried Rice", Price: "80"}}
}

func testOrder(name, timestamp string) domain.Order {
	return domain.Order{
		EmpName:   name,
		Total:     80,
		Timestamp: timestamp,
		Items:     []domain.OrderLine{{Name: "Fried Rice", Price: "80", Quantity: 1}},
	}
}

func newClientAgainst(t *testing.T, store roomstore.DocumentStore) *Client {
	t.Helper()
	srv := httptest.NewServer(roomstore.NewRouter(roomstore.NewHandler(store)))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client())
}

func TestCreateAndPollRoom(t *testing.T) {
	client := newClientAgainst(t, roomstore.NewMemoryStore())
	ctx := context.Background()

	id, err := client.CreateRoom(ctx, testMenu())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if id == "" {
		t.Fatal("empty room id")
	}

	roomDoc, err := client.PollRoom(ctx, id)
	if err != nil {
		t.Fatalf("PollRoom: %v", err)
	}
	if len(roomDoc.Menu) != 1 || roomDoc.Menu[0].Name != "Fried Rice" {
		t.Errorf("menu = %+v", roomDoc.Menu)
	}
	if len(roomDoc.Orders) != 0 {
		t.Errorf("fresh room has orders: %+v", roomDoc.Orders)
	}
}

func TestPollUnknownRoom(t *testing.T) {
	client := newClientAgainst(t, roomstore.NewMemoryStore())
	if _, err := client.PollRoom(context.Background(), "missing"); err == nil {
		t.Error("PollRoom succeeded for unknown room")
	}
}

func TestSubmitOrderIdempotent(t *testing.T) {
	client := newClientAgainst(t, roomstore.NewMemoryStore())
	ctx := context.Background()

	id, err := client.CreateRoom(ctx, testMenu())
	if err != nil {
		t.Fatal(err)
	}

	order := testOrder("Wang", "2026-08-31T04:00:00Z")
	first, err := client.SubmitOrder(ctx, id, order)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if len(first.Orders) != 1 {
		t.Fatalf("orders after first submit = %d", len(first.Orders))
	}

	// Identical (empName, timestamp): the double-tap case.
	second, err := client.SubmitOrder(ctx, id, order)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if len(second.Orders) != 1 {
		t.Errorf("orders after duplicate submit = %d, want 1", len(second.Orders))
	}

	// A different participant still appends.
	other := testOrder("Lin", "2026-08-31T04:01:00Z")
	third, err := client.SubmitOrder(ctx, id, other)
	if err != nil {
		t.Fatalf("third submit: %v", err)
	}
	if len(third.Orders) != 2 {
		t.Errorf("orders after distinct submit = %d, want 2", len(third.Orders))
	}
}

// conflictingStore forces the first n conditional writes to fail with a
// revision mismatch, modeling a concurrent writer sneaking in between the
// client's read and write.
type conflictingStore struct {
	*roomstore.MemoryStore
	remaining atomic.Int32
}

func (s *conflictingStore) Put(ctx context.Context, id string, doc json.RawMessage, expectRev string) (string, error) {
	if s.remaining.Add(-1) >= 0 {
		return "", roomstore.ErrRevisionMismatch
	}
	return s.MemoryStore.Put(ctx, id, doc, expectRev)
}

func TestSubmitOrderRetriesOnConflict(t *testing.T) {
	store := &conflictingStore{MemoryStore: roomstore.NewMemoryStore()}
	store.remaining.Store(2)
	client := newClientAgainst(t, store)
	ctx := context.Background()

	id, err := client.CreateRoom(ctx, testMenu())
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.SubmitOrder(ctx, id, testOrder("Wang", "t1"))
	if err != nil {
		t.Fatalf("submit with transient conflicts: %v", err)
	}
	if len(got.Orders) != 1 {
		t.Errorf("orders = %d, want 1", len(got.Orders))
	}
}

func TestSubmitOrderGivesUpAfterRepeatedConflicts(t *testing.T) {
	store := &conflictingStore{MemoryStore: roomstore.NewMemoryStore()}
	store.remaining.Store(100)
	client := newClientAgainst(t, store)
	ctx := context.Background()

	id, err := client.CreateRoom(ctx, testMenu())
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.SubmitOrder(ctx, id, testOrder("Wang", "t1"))
	if !errors.Is(err, ErrRevisionConflict) {
		t.Errorf("err = %v, want ErrRevisionConflict", err)
	}
}

func TestWatchReportsOnlyChanges(t *testing.T) {
	client := newClientAgainst(t, roomstore.NewMemoryStore())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id, err := client.CreateRoom(ctx, testMenu())
	if err != nil {
		t.Fatal(err)
	}

	changes := make(chan int, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = client.Watch(ctx, id, 10*time.Millisecond, func(r domain.Room) {
			changes <- len(r.Orders)
		})
	}()

	// Initial read reports the empty room.
	select {
	case n := <-changes:
		if n != 0 {
			t.Errorf("initial change = %d orders", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial change reported")
	}

	if _, err := client.SubmitOrder(ctx, id, testOrder("Wang", "t1")); err != nil {
		t.Fatal(err)
	}

	select {
	case n := <-changes:
		if n != 1 {
			t.Errorf("change after submit = %d orders", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported after submit")
	}

	// Quiet room: no further callbacks even after several poll intervals.
	select {
	case n := <-changes:
		t.Errorf("unexpected change callback with %d orders", n)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}
