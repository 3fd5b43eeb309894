package export

import (
	"cmp"
	"slices"
	"time"
)

// SenderTotal is the number of messages one participant sent.
type SenderTotal struct {
	Sender   string
	Messages int
}

// Stats summarizes a parsed export.
type Stats struct {
	TotalMessages int
	Participants  int
	First         time.Time
	Last          time.Time
	PerSender     []SenderTotal
}

// DateRange formats the first and last timestamps for display.
func (s Stats) DateRange() string {
	if s.TotalMessages == 0 || s.First.IsZero() {
		return "N/A"
	}
	const layout = "Jan 02, 2006"
	return s.First.Format(layout) + " - " + s.Last.Format(layout)
}

// Participants returns the distinct senders sorted by name.
func Participants(seq Sequence) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range seq.All() {
		if _, ok := seen[m.Sender]; ok {
			continue
		}
		seen[m.Sender] = struct{}{}
		names = append(names, m.Sender)
	}
	slices.Sort(names)
	return names
}

// ComputeStats aggregates message counts and the covered time range.
// PerSender is ordered by message count, busiest first.
func ComputeStats(seq Sequence) Stats {
	st := Stats{TotalMessages: seq.Len()}
	if seq.Empty() {
		return st
	}

	counts := make(map[string]int)
	var order []string
	for _, m := range seq.All() {
		if _, ok := counts[m.Sender]; !ok {
			order = append(order, m.Sender)
		}
		counts[m.Sender]++
		if st.First.IsZero() || m.Timestamp.Before(st.First) {
			st.First = m.Timestamp
		}
		if m.Timestamp.After(st.Last) {
			st.Last = m.Timestamp
		}
	}

	st.Participants = len(order)
	st.PerSender = make([]SenderTotal, 0, len(order))
	for _, s := range order {
		st.PerSender = append(st.PerSender, SenderTotal{Sender: s, Messages: counts[s]})
	}
	slices.SortStableFunc(st.PerSender, func(a, b SenderTotal) int {
		return cmp.Compare(b.Messages, a.Messages)
	})
	return st
}
