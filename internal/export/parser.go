package export

import "strings"

// Parser turns raw export text into a Sequence.
type Parser struct {
	classifier *Classifier
}

// NewParser creates a parser using the given classifier. A nil classifier
// selects DefaultClassifier.
func NewParser(c *Classifier) *Parser {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Parser{classifier: c}
}

// Parse parses raw with the default classifier.
func Parse(raw string) Sequence {
	return NewParser(nil).Parse(raw)
}

// pending is the message currently being assembled.
type pending struct {
	msg  Message
	body strings.Builder
}

// Parse walks raw line by line. A header flushes the message in progress
// and opens a new one; a continuation extends it; a notice flushes it and
// is dropped. The result is empty when no header was recognized.
//
// Dates are read in one order for the whole export, taken from the first
// header whose date exists in only one order (13/1/23 or 1/13/23), and
// day-first when every header is ambiguous.
func (p *Parser) Parse(raw string) Sequence {
	var lines []Line
	for line := range strings.Lines(raw) {
		lines = append(lines, p.classifier.Classify(strings.TrimRight(line, "\r\n")))
	}
	order := DetectOrder(lines)

	var (
		out []Message
		cur *pending
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.msg.Body = strings.TrimSpace(cur.body.String())
		if cur.msg.Body != "" {
			out = append(out, cur.msg)
		}
		cur = nil
	}

	for _, cl := range lines {
		switch cl.Kind {
		case Header:
			flush()
			cur = &pending{msg: Message{Timestamp: cl.Stamp.In(order), Sender: cl.Sender}}
			cur.body.WriteString(cl.Text)
		case Notice:
			flush()
		default:
			text := strings.TrimSpace(cl.Text)
			if cur == nil || text == "" {
				continue
			}
			if cur.body.Len() > 0 {
				cur.body.WriteByte('\n')
			}
			cur.body.WriteString(text)
		}
	}
	flush()

	return Sequence{msgs: out}
}

// DetectOrder returns the date order of the first header that can only be
// read one way, or DayFirst.
func DetectOrder(lines []Line) DateOrder {
	for _, l := range lines {
		if l.Kind != Header {
			continue
		}
		if order, ok := l.Stamp.Order(); ok {
			return order
		}
	}
	return DayFirst
}
