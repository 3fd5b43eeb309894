package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe("corpus.", 10)
	defer sub.Close()

	b.Publish(NewEvent(KindCorpusLoaded, "test"))

	select {
	case evt := <-sub.C:
		if evt.Kind != KindCorpusLoaded {
			t.Errorf("got kind %q, want %s", evt.Kind, KindCorpusLoaded)
		}
		if evt.ID == "" {
			t.Error("event id is empty")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestPublishFillsIDAndTimestamp(t *testing.T) {
	b := New()
	sub := b.Subscribe("", 10)
	defer sub.Close()

	b.Publish(Event{Kind: KindWordQuery})
	b.Publish(Event{Kind: KindWordQuery})

	first, second := <-sub.C, <-sub.C
	if first.ID == "" || second.ID == "" {
		t.Fatal("expected ids to be assigned")
	}
	if first.ID == second.ID {
		t.Errorf("ids not unique: %s", first.ID)
	}
	if first.Timestamp.IsZero() {
		t.Error("timestamp not assigned")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	sub := b.Subscribe("query.", 10)
	defer sub.Close()

	b.Publish(NewEvent(KindStatusChanged, nil))
	b.Publish(NewEvent(KindAskQuery, nil))

	select {
	case evt := <-sub.C:
		if evt.Kind != KindAskQuery {
			t.Errorf("got kind %q, want %s", evt.Kind, KindAskQuery)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// Ensure corpus event was not delivered.
	select {
	case evt := <-sub.C:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe("corpus.", 10)
	if b.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", b.Subscribers())
	}
	sub.Close()
	sub.Close()
	if b.Subscribers() != 0 {
		t.Fatalf("subscribers = %d, want 0", b.Subscribers())
	}

	b.Publish(NewEvent(KindStatusChanged, nil))

	select {
	case evt := <-sub.C:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	sub := b.Subscribe("query.", 1)
	defer sub.Close()

	// Fill buffer.
	b.Publish(NewEvent(KindWordQuery, nil))
	// This should be dropped (non-blocking).
	b.Publish(NewEvent(KindAskQuery, nil))

	evt := <-sub.C
	if evt.Kind != KindWordQuery {
		t.Errorf("got %q, want %s", evt.Kind, KindWordQuery)
	}
	if sub.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", sub.Dropped())
	}
}
