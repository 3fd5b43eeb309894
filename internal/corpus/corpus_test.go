package corpus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/chatlens/internal/bus"
	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/retrieval"
	"github.com/matheus3301/chatlens/internal/status"
)

const sample = `12/01/2024, 10:00 - Messages and calls are end-to-end encrypted. No one outside of this chat can read them.
12/01/2024, 10:01 - Alice: who's up for pizza tonight?
12/01/2024, 10:02 - Bob: me!
bring drinks
12/01/2024, 10:03 - Carol: pizza again?
`

func TestLoad(t *testing.T) {
	h := NewHolder(Options{})
	if _, err := h.Current(); !errors.Is(err, ErrNoCorpus) {
		t.Fatalf("Current() before load = %v, want ErrNoCorpus", err)
	}

	c, err := h.Load(context.Background(), "chat.txt", sample)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "chat.txt" {
		t.Errorf("name = %q", c.Name)
	}
	if c.Seq.Len() != 3 {
		t.Errorf("messages = %d, want 3", c.Seq.Len())
	}
	if c.Stats.TotalMessages != 3 || c.Stats.Participants != 3 {
		t.Errorf("stats = %+v", c.Stats)
	}
	if len(c.Participants) != 3 || c.Participants[0] != "Alice" {
		t.Errorf("participants = %v", c.Participants)
	}
	if h.Status().Current() != status.Ready {
		t.Errorf("state = %s, want READY", h.Status().Current())
	}

	cur, err := h.Current()
	if err != nil || cur != c {
		t.Fatalf("Current() = %p, %v; want %p", cur, err, c)
	}

	got, err := c.Retrieve(context.Background(), "pizza")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Sender != "Alice" || got[1].Sender != "Carol" {
		t.Errorf("Retrieve = %+v", got)
	}
}

func TestLoadUnrecognizedDropsPrevious(t *testing.T) {
	h := NewHolder(Options{})
	if _, err := h.Load(context.Background(), "good.txt", sample); err != nil {
		t.Fatal(err)
	}

	_, err := h.Load(context.Background(), "notes.txt", "just some notes\nnothing chat-like\n")
	if !errors.Is(err, export.ErrUnrecognizedFormat) {
		t.Fatalf("Load = %v, want ErrUnrecognizedFormat", err)
	}
	if _, err := h.Current(); !errors.Is(err, ErrNoCorpus) {
		t.Errorf("Current() after failed load = %v, want ErrNoCorpus", err)
	}
	state, _, reason := h.Status().Snapshot()
	if state != status.Failed || reason == "" {
		t.Errorf("state = %s (%q), want FAILED with reason", state, reason)
	}

	// Recover with a good export.
	if _, err := h.Load(context.Background(), "good.txt", sample); err != nil {
		t.Fatal(err)
	}
	if h.Status().Current() != status.Ready {
		t.Errorf("state = %s, want READY", h.Status().Current())
	}
}

func TestLoadEvents(t *testing.T) {
	b := bus.New()
	sub := b.Subscribe("corpus.", 10)
	defer sub.Close()

	h := NewHolder(Options{Bus: b})
	if _, err := h.Load(context.Background(), "chat.txt", sample); err != nil {
		t.Fatal(err)
	}

	var kinds []string
	var loaded LoadedEvent
	for range 3 {
		select {
		case evt := <-sub.C:
			kinds = append(kinds, evt.Kind)
			if p, ok := evt.Payload.(LoadedEvent); ok {
				loaded = p
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout; got %v", kinds)
		}
	}
	want := []string{bus.KindStatusChanged, bus.KindStatusChanged, bus.KindCorpusLoaded}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if loaded != (LoadedEvent{Name: "chat.txt", Messages: 3, Participants: 3}) {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestReplacedCorpusIsReleased(t *testing.T) {
	for _, backend := range []string{retrieval.BackendLexical, retrieval.BackendFTS} {
		t.Run(backend, func(t *testing.T) {
			h := NewHolder(Options{Backend: backend})
			defer func() { _ = h.Close() }()

			first, err := h.Load(context.Background(), "a", sample)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := h.Load(context.Background(), "b", sample); err != nil {
				t.Fatal(err)
			}
			if _, err := first.Retrieve(context.Background(), "pizza"); !errors.Is(err, ErrNoCorpus) {
				t.Errorf("Retrieve on replaced corpus = %v, want ErrNoCorpus", err)
			}
			cur, _ := h.Current()
			if cur.Name != "b" {
				t.Errorf("current = %q, want b", cur.Name)
			}
			if h.Backend() != backend {
				t.Errorf("backend = %q", h.Backend())
			}
		})
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	h := NewHolder(Options{Backend: "vector"})
	if _, err := h.Load(context.Background(), "a", sample); err == nil {
		t.Fatal("expected error")
	}
	if h.Status().Current() != status.Failed {
		t.Errorf("state = %s, want FAILED", h.Status().Current())
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := NewHolder(Options{})
	if _, err := h.Load(ctx, "a", sample); !errors.Is(err, context.Canceled) {
		t.Errorf("Load = %v, want context.Canceled", err)
	}
}

func TestConcurrentReadsDuringLoads(t *testing.T) {
	h := NewHolder(Options{})
	if _, err := h.Load(context.Background(), "a", sample); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				c, err := h.Current()
				if err != nil {
					continue
				}
				_, err = c.Retrieve(context.Background(), "pizza")
				if err != nil && !errors.Is(err, ErrNoCorpus) {
					t.Errorf("Retrieve: %v", err)
					return
				}
			}
		}()
	}
	for range 10 {
		if _, err := h.Load(context.Background(), "a", sample); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
}

func TestClose(t *testing.T) {
	h := NewHolder(Options{Backend: retrieval.BackendFTS})
	if err := h.Close(); err != nil {
		t.Fatalf("Close on empty holder: %v", err)
	}
	if _, err := h.Load(context.Background(), "a", sample); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Current(); !errors.Is(err, ErrNoCorpus) {
		t.Errorf("Current() after Close = %v", err)
	}
}
