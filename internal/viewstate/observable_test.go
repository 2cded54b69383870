package viewstate

import (
	"testing"
	"time"
)

func TestSubscribeDeliversCurrentValue(t *testing.T) {
	obs := NewObservable(1)
	ch, cancel := obs.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		if v != 1 {
			t.Fatalf("got %d, want 1", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no initial value")
	}
}

func TestSubscribeConflatesToLatest(t *testing.T) {
	obs := NewObservable(0)
	ch, cancel := obs.Subscribe()
	defer cancel()

	for i := 1; i <= 5; i++ {
		obs.set(i)
	}
	if v := <-ch; v != 5 {
		t.Fatalf("got %d, want latest value 5", v)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	obs := NewObservable("a")
	ch, cancel := obs.Subscribe()
	<-ch
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after cancel")
	}
	obs.set("b")
	if obs.Value() != "b" {
		t.Fatalf("unexpected value %q", obs.Value())
	}
}

func TestCloseDiscardsWrites(t *testing.T) {
	obs := NewObservable(1)
	ch, _ := obs.Subscribe()
	<-ch
	obs.Close()

	if _, ok := <-ch; ok {
		t.Fatal("expected subscriber channel closed")
	}
	if obs.set(2) {
		t.Fatal("set after close must report false")
	}
	if obs.Value() != 1 {
		t.Fatalf("value changed after close: %d", obs.Value())
	}
	late, _ := obs.Subscribe()
	if _, ok := <-late; ok {
		t.Fatal("subscribing after close must yield a closed channel")
	}
	if !obs.Closed() {
		t.Fatal("expected Closed() true")
	}
}
