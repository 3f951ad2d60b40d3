package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	// Insert
	h := table.Insert(1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	// Get
	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	// GetTyped with correct category
	_, ok = table.GetTyped(h, 1)
	if !ok {
		t.Fatal("GetTyped with correct category failed")
	}

	// GetTyped with wrong category
	_, ok = table.GetTyped(h, 2)
	if ok {
		t.Fatal("GetTyped with wrong category should fail")
	}

	// Remove
	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	// Len should be 0
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_ZeroHandleInvalid(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(0); ok {
		t.Fatal("Get(0) should fail")
	}
	if _, ok := table.Remove(0); ok {
		t.Fatal("Remove(0) should fail")
	}
}

func TestTable_RemoveTwice(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "test")
	if _, ok := table.Remove(h); !ok {
		t.Fatal("First remove failed")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("Second remove should fail")
	}
}

func TestTable_HandleReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(1, "a")
	table.Remove(h1)

	h2 := table.Insert(1, "b")
	if h2 != h1 {
		t.Fatalf("Expected freed handle %d to be reused, got %d", h1, h2)
	}

	val, ok := table.Get(h2)
	if !ok || val != "b" {
		t.Fatalf("Expected 'b', got %v", val)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	// Insert should trigger EventCreated
	h := table.Insert(1, "test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	// Remove should trigger EventDropped
	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventDropped {
		t.Fatal("Expected EventDropped")
	}

	// Unsubscribed observer stops receiving
	table.Unsubscribe(obs)
	table.Insert(1, "more")
	if len(obs.events) != 2 {
		t.Fatalf("Expected no events after unsubscribe, got %d", len(obs.events))
	}
}

type testDropper struct {
	dropped bool
}

func (d *testDropper) Drop() {
	d.dropped = true
}

func TestTable_Dropper(t *testing.T) {
	table := NewTable()
	d := &testDropper{}

	h := table.Insert(1, d)
	table.Remove(h)
	if !d.dropped {
		t.Fatal("Expected Drop() to be called on Remove")
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d := &testDropper{}
	table.Insert(1, d)

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !d.dropped {
		t.Fatal("Expected Drop() to be called on Close")
	}

	// Closed table refuses inserts
	if h := table.Insert(1, "x"); h != 0 {
		t.Fatal("Insert after Close should return 0")
	}
}

func TestTable_Each(t *testing.T) {
	table := NewTable()
	table.Insert(1, "a")
	table.Insert(2, "b")

	seen := map[any]uint32{}
	table.Each(func(h Handle, cat uint32, v any) bool {
		seen[v] = cat
		return true
	})

	if len(seen) != 2 || seen["a"] != 1 || seen["b"] != 2 {
		t.Fatalf("Each saw wrong entries: %v", seen)
	}
}
