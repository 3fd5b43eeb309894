// Package corpus owns the export loaded into a session.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matheus3301/chatlens/internal/bus"
	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/retrieval"
	"github.com/matheus3301/chatlens/internal/status"
)

// ErrNoCorpus is returned when nothing is loaded, or when the corpus a
// caller holds has been replaced by a newer load.
var ErrNoCorpus = errors.New("no chat export loaded")

// Corpus is one parsed export plus its retriever. The sequence is never
// mutated, so any number of queries may read it concurrently.
type Corpus struct {
	Name         string
	Seq          export.Sequence
	Stats        export.Stats
	Participants []string
	LoadedAt     time.Time

	mu        sync.RWMutex
	retriever retrieval.Retriever
	closed    bool
}

// Retrieve selects the context for question.
func (c *Corpus) Retrieve(ctx context.Context, question string) ([]export.Message, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrNoCorpus
	}
	return c.retriever.Retrieve(ctx, question)
}

// release waits for in-flight retrievals and frees the retriever.
func (c *Corpus) release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if cl, ok := c.retriever.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// LoadedEvent is the payload of corpus.loaded.
type LoadedEvent struct {
	Name         string
	Messages     int
	Participants int
}

// Options configures a Holder.
type Options struct {
	Backend   string
	Retrieval retrieval.Options
	Bus       *bus.Bus
	Status    *status.Machine
	Logger    *zap.Logger
}

// Holder keeps the current corpus of a session. Loads are serialised;
// reads never wait for a load to finish.
type Holder struct {
	opts   Options
	log    *zap.Logger
	status *status.Machine

	loadMu sync.Mutex

	mu  sync.RWMutex
	cur *Corpus
}

// NewHolder returns an empty Holder.
func NewHolder(opts Options) *Holder {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	st := opts.Status
	if st == nil {
		st = status.NewMachine(opts.Bus)
	}
	return &Holder{opts: opts, log: log, status: st}
}

// Status exposes the lifecycle machine.
func (h *Holder) Status() *status.Machine { return h.status }

// Backend reports the retrieval backend in use.
func (h *Holder) Backend() string {
	if h.opts.Backend == "" {
		return retrieval.BackendLexical
	}
	return h.opts.Backend
}

// Current returns the loaded corpus or ErrNoCorpus.
func (h *Holder) Current() (*Corpus, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.cur == nil {
		return nil, ErrNoCorpus
	}
	return h.cur, nil
}

// Load parses raw and makes it the session's corpus. On failure the
// previous corpus is dropped as well.
func (h *Holder) Load(ctx context.Context, name, raw string) (*Corpus, error) {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	h.transition(status.Loading, "")
	start := time.Now()

	c, err := h.build(ctx, name, raw)
	if err != nil {
		h.swap(nil)
		h.transition(status.Failed, err.Error())
		h.log.Warn("load failed", zap.String("name", name), zap.Int("bytes", len(raw)), zap.Error(err))
		return nil, err
	}

	h.swap(c)
	h.transition(status.Ready, "")
	h.log.Info("export loaded",
		zap.String("name", name),
		zap.Int("bytes", len(raw)),
		zap.Int("messages", c.Seq.Len()),
		zap.Int("participants", len(c.Participants)),
		zap.String("backend", h.Backend()),
		zap.Duration("duration", time.Since(start)),
	)
	if h.opts.Bus != nil {
		h.opts.Bus.Publish(bus.NewEvent(bus.KindCorpusLoaded, LoadedEvent{
			Name:         name,
			Messages:     c.Seq.Len(),
			Participants: len(c.Participants),
		}))
	}
	return c, nil
}

func (h *Holder) build(ctx context.Context, name, raw string) (*Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seq := export.Parse(raw)
	if seq.Empty() {
		return nil, export.ErrUnrecognizedFormat
	}
	r, err := retrieval.New(h.opts.Backend, seq, h.opts.Retrieval)
	if err != nil {
		return nil, fmt.Errorf("build retriever: %w", err)
	}
	return &Corpus{
		Name:         name,
		Seq:          seq,
		Stats:        export.ComputeStats(seq),
		Participants: export.Participants(seq),
		LoadedAt:     time.Now(),
		retriever:    r,
	}, nil
}

func (h *Holder) swap(c *Corpus) {
	h.mu.Lock()
	old := h.cur
	h.cur = c
	h.mu.Unlock()

	if old != nil {
		if err := old.release(); err != nil {
			h.log.Warn("release previous corpus", zap.Error(err))
		}
	}
}

func (h *Holder) transition(to status.State, reason string) {
	if err := h.status.TransitionWithReason(to, reason); err != nil {
		h.log.Error("status transition", zap.Error(err))
	}
}

// Close releases the current corpus.
func (h *Holder) Close() error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()
	h.mu.Lock()
	old := h.cur
	h.cur = nil
	h.mu.Unlock()
	if old == nil {
		return nil
	}
	return old.release()
}
