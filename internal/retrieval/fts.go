package retrieval

import (
	"context"
	"fmt"

	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/store"
)

// FTS scores a message by how many distinct query words start a word in
// its body, using a private in-memory full-text index.
type FTS struct {
	seq export.Sequence
	db  *store.DB
	cfg config
}

// NewFTS indexes seq. Close releases the index.
func NewFTS(seq export.Sequence, opts Options) (*FTS, error) {
	db, err := store.OpenMemory()
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	rows := make([]store.Message, 0, seq.Len())
	for i, m := range seq.All() {
		rows = append(rows, store.Message{ID: int64(i), Body: m.Body})
	}
	if err := db.InsertMessages(rows); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("index messages: %w", err)
	}
	return &FTS{seq: seq, db: db, cfg: opts.resolve()}, nil
}

// Retrieve implements Retriever.
func (f *FTS) Retrieve(ctx context.Context, query string) ([]export.Message, error) {
	scores := make([]int, f.seq.Len())
	for _, tok := range Tokenize(query, f.cfg.stop) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids, err := f.db.MatchPrefix(tok)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", tok, err)
		}
		for _, id := range ids {
			if id >= 0 && int(id) < len(scores) {
				scores[id]++
			}
		}
	}
	return selectTop(f.seq, scores, f.cfg.k), nil
}

// Close drops the index.
func (f *FTS) Close() error {
	return f.db.Close()
}
