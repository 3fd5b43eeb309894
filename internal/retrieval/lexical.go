package retrieval

import (
	"context"
	"strings"

	"github.com/matheus3301/chatlens/internal/export"
)

// Lexical scores a message by how many distinct query words occur in its
// lowercased body as substrings.
type Lexical struct {
	seq     export.Sequence
	lowered []string
	cfg     config
}

// NewLexical prepares a lexical retriever over seq.
func NewLexical(seq export.Sequence, opts Options) *Lexical {
	l := &Lexical{seq: seq, cfg: opts.resolve(), lowered: make([]string, seq.Len())}
	for i, m := range seq.All() {
		l.lowered[i] = strings.ToLower(m.Body)
	}
	return l
}

// Retrieve implements Retriever.
func (l *Lexical) Retrieve(ctx context.Context, query string) ([]export.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := Tokenize(query, l.cfg.stop)
	scores := make([]int, len(l.lowered))
	for i, body := range l.lowered {
		for _, tok := range tokens {
			if strings.Contains(body, tok) {
				scores[i]++
			}
		}
	}
	return selectTop(l.seq, scores, l.cfg.k), nil
}
