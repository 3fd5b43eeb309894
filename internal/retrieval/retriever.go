// Package retrieval selects the messages most relevant to a question.
//
// Every Retriever honours the same contract regardless of how it scores:
// at most K messages, returned in chronological order, ties broken in
// favour of later messages, and when nothing scores (or the query has no
// usable words) the K most recent messages instead of an empty result.
package retrieval

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matheus3301/chatlens/internal/export"
)

// DefaultK is the default context size.
const DefaultK = 20

// Backend names accepted by New.
const (
	BackendLexical = "lexical"
	BackendFTS     = "fts"
)

// Retriever picks the context for one question.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]export.Message, error)
}

// Options tunes a Retriever. K <= 0 selects DefaultK. A nil Stopwords
// selects DefaultStopwords; an empty non-nil list disables stopwords.
type Options struct {
	K         int
	Stopwords []string
}

// DefaultStopwords are dropped from queries before scoring.
var DefaultStopwords = []string{
	"a", "about", "all", "an", "and", "any", "are", "as", "at", "be", "been", "but", "by",
	"can", "could", "did", "do", "does", "for", "from", "had", "has", "have", "he", "her",
	"him", "his", "how", "i", "if", "in", "is", "it", "its", "me", "my", "of", "on", "or",
	"our", "she", "so", "that", "the", "their", "them", "then", "there", "these", "they",
	"this", "those", "to", "us", "was", "we", "were", "what", "when", "where", "which",
	"who", "whom", "why", "will", "with", "would", "you", "your",
}

type config struct {
	k    int
	stop map[string]struct{}
}

func (o Options) resolve() config {
	c := config{k: o.K, stop: make(map[string]struct{})}
	if c.k <= 0 {
		c.k = DefaultK
	}
	words := o.Stopwords
	if words == nil {
		words = DefaultStopwords
	}
	for _, w := range words {
		c.stop[strings.ToLower(w)] = struct{}{}
	}
	return c
}

// New builds the retriever named by backend over seq.
func New(backend string, seq export.Sequence, opts Options) (Retriever, error) {
	switch backend {
	case "", BackendLexical:
		return NewLexical(seq, opts), nil
	case BackendFTS:
		return NewFTS(seq, opts)
	default:
		return nil, fmt.Errorf("unknown retrieval backend %q", backend)
	}
}

// Tokenize lowercases query, splits it on anything that is not a letter or
// digit, and drops stopwords, single characters and duplicates.
func Tokenize(query string, stop map[string]struct{}) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if _, ok := stop[f]; ok {
			continue
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// selectTop applies the shared contract to per-message scores, where
// scores[i] belongs to seq.At(i).
func selectTop(seq export.Sequence, scores []int, k int) []export.Message {
	var hits []int
	for i, s := range scores {
		if s > 0 {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return seq.Tail(k)
	}

	// Export order is chronological, so among equal scores the higher
	// index is the later message whatever its parsed timestamp says.
	slices.SortFunc(hits, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	slices.Sort(hits)

	out := make([]export.Message, len(hits))
	for i, idx := range hits {
		out[i] = seq.At(idx)
	}
	return out
}
