package export

import (
	"iter"
	"slices"
	"time"
)

// Message is one participant message recovered from an export.
type Message struct {
	Timestamp time.Time
	Sender    string
	Body      string
}

// Sequence is the ordered, read-only list of messages parsed from one
// export. Export order is chronological order.
type Sequence struct {
	msgs []Message
}

// NewSequence copies msgs into a Sequence.
func NewSequence(msgs []Message) Sequence {
	return Sequence{msgs: slices.Clone(msgs)}
}

// Len returns the number of messages.
func (s Sequence) Len() int { return len(s.msgs) }

// Empty reports whether no message was recognized.
func (s Sequence) Empty() bool { return len(s.msgs) == 0 }

// At returns the i-th message.
func (s Sequence) At(i int) Message { return s.msgs[i] }

// All iterates messages in export order.
func (s Sequence) All() iter.Seq2[int, Message] {
	return func(yield func(int, Message) bool) {
		for i, m := range s.msgs {
			if !yield(i, m) {
				return
			}
		}
	}
}

// Messages returns a copy of the underlying messages.
func (s Sequence) Messages() []Message {
	return slices.Clone(s.msgs)
}

// Tail returns a copy of the last n messages in export order.
func (s Sequence) Tail(n int) []Message {
	if n <= 0 {
		return nil
	}
	if n > len(s.msgs) {
		n = len(s.msgs)
	}
	return slices.Clone(s.msgs[len(s.msgs)-n:])
}
