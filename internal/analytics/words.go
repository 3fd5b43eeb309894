// Package analytics answers keyword-frequency questions over a parsed export.
package analytics

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/matheus3301/chatlens/internal/export"
)

// ErrInvalidQuery is returned for an empty or whitespace-only search term.
var ErrInvalidQuery = errors.New("invalid query: search term must not be empty")

// SenderCount is the number of term occurrences in one sender's messages.
type SenderCount struct {
	Sender string
	Count  int
}

// WordResult is the outcome of one term search.
type WordResult struct {
	Term   string
	Sender string // filter, empty when counting every sender
	Counts []SenderCount
	Total  int
}

// CountFor returns the count for sender, zero if absent.
func (r WordResult) CountFor(sender string) int {
	for _, c := range r.Counts {
		if c.Sender == sender {
			return c.Count
		}
	}
	return 0
}

// CountWord counts case-insensitive, non-overlapping occurrences of term
// in message bodies. Without a sender filter every sender in seq is
// reported, zero counts included, busiest first with ties in order of
// first appearance. With a filter exactly one entry is reported.
func CountWord(seq export.Sequence, term, sender string) (WordResult, error) {
	if strings.TrimSpace(term) == "" {
		return WordResult{}, ErrInvalidQuery
	}
	needle := strings.ToLower(term)

	res := WordResult{Term: term, Sender: sender}
	if sender != "" {
		res.Counts = []SenderCount{{Sender: sender}}
	}
	pos := make(map[string]int)
	for i, c := range res.Counts {
		pos[c.Sender] = i
	}

	for _, m := range seq.All() {
		if sender != "" && m.Sender != sender {
			continue
		}
		i, ok := pos[m.Sender]
		if !ok {
			i = len(res.Counts)
			pos[m.Sender] = i
			res.Counts = append(res.Counts, SenderCount{Sender: m.Sender})
		}
		n := strings.Count(strings.ToLower(m.Body), needle)
		res.Counts[i].Count += n
		res.Total += n
	}

	slices.SortStableFunc(res.Counts, func(a, b SenderCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return res, nil
}
