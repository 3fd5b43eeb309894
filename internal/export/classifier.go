package export

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind is the outcome of classifying one physical line.
type Kind int

const (
	// Continuation lines extend the message currently being built.
	Continuation Kind = iota
	// Header lines start a new message.
	Header
	// Notice lines describe chat-level events and are discarded.
	Notice
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "header"
	case Notice:
		return "notice"
	default:
		return "continuation"
	}
}

// Line is a classified physical line. Stamp, Timestamp and Sender are only
// set for Header lines, and Text holds the raw line for continuations.
// Format names the matcher that recognized a Header or Notice line.
type Line struct {
	Kind   Kind
	Format string
	// Timestamp is Stamp read day-first. The parser re-reads Stamp once
	// it knows the date order of the whole export.
	Timestamp time.Time
	Stamp     Stamp
	Sender    string
	Text      string
}

// DateOrder says which of the first two date fields holds the day.
type DateOrder int

const (
	DayFirst DateOrder = iota
	MonthFirst
)

func (o DateOrder) String() string {
	if o == MonthFirst {
		return "month-first"
	}
	return "day-first"
}

// Stamp is a header timestamp read in both date orders. A reading is zero
// when the date does not exist in that order.
type Stamp struct {
	readings [2]time.Time
}

// In returns the reading for order, or the other reading when the date
// only exists the other way round.
func (s Stamp) In(order DateOrder) time.Time {
	if t := s.readings[order]; !t.IsZero() {
		return t
	}
	return s.readings[1-order]
}

// Order returns the date order when only one reading exists. Dates like
// 3/4/23 give ok == false.
func (s Stamp) Order() (order DateOrder, ok bool) {
	day, month := !s.readings[DayFirst].IsZero(), !s.readings[MonthFirst].IsZero()
	switch {
	case day && !month:
		return DayFirst, true
	case month && !day:
		return MonthFirst, true
	}
	return DayFirst, false
}

// Matcher recognizes one header format. Match returns the parsed timestamp
// and the text following the timestamp prefix.
type Matcher interface {
	Name() string
	Match(line string) (Stamp, string, bool)
}

// Whitespace inside exported timestamps, including the narrow no-break
// space newer exports put before AM/PM.
const sp = `[\s\x{202F}\x{00A0}]`

const (
	datePart = `(?P<a>\d{1,2})[/.\-](?P<b>\d{1,2})[/.\-](?P<y>\d{4}|\d{2})`
	timePart = `(?P<h>\d{1,2}):(?P<m>\d{2})(?::(?P<s>\d{2}))?(?:` + sp + `*(?P<ampm>[AaPp])\.?` + sp + `?[Mm]\.?)?`
	lrm      = `^\x{200E}?`
)

// DashMatcher recognizes "31/12/23, 21:05 - rest" headers.
func DashMatcher() Matcher {
	return newPatternMatcher("dash", lrm+datePart+`,?`+sp+`+`+timePart+sp+`*-`+sp+`*(?P<rest>.*)$`)
}

// BracketMatcher recognizes "[31/12/23, 21:05:09] rest" headers.
func BracketMatcher() Matcher {
	return newPatternMatcher("bracket", lrm+`\[`+datePart+`,?`+sp+`+`+timePart+`\]`+sp+`*(?P<rest>.*)$`)
}

// DefaultMatchers returns the built-in header formats in priority order.
func DefaultMatchers() []Matcher {
	return []Matcher{DashMatcher(), BracketMatcher()}
}

// DefaultNotices are case-insensitive fragments marking system notices.
// A header is a notice when its sender field contains one, when its whole
// body is one (placeholders such as "<Media omitted>"), or when its body
// carries the left-to-right mark exports put on system lines and contains
// one. A participant merely mentioning "added you" is not a notice.
var DefaultNotices = []string{
	"messages and calls are end-to-end encrypted",
	"created group",
	"added you",
	"removed you",
	"left the group",
	"changed the subject",
	"changed this group",
	"changed the group",
	"deleted this message",
	"you deleted this message",
	"this message was deleted",
	"<media omitted>",
	"image omitted",
	"video omitted",
	"audio omitted",
	"sticker omitted",
	"missed voice call",
	"missed video call",
	"joined using this group's invite link",
}

type patternMatcher struct {
	name string
	re   *regexp.Regexp
	idx  map[string]int
}

func newPatternMatcher(name, pattern string) *patternMatcher {
	re := regexp.MustCompile(pattern)
	idx := make(map[string]int)
	for i, n := range re.SubexpNames() {
		if n != "" {
			idx[n] = i
		}
	}
	return &patternMatcher{name: name, re: re, idx: idx}
}

func (p *patternMatcher) Name() string { return p.name }

func (p *patternMatcher) Match(line string) (Stamp, string, bool) {
	sm := p.re.FindStringSubmatch(line)
	if sm == nil {
		return Stamp{}, "", false
	}
	get := func(name string) string { return sm[p.idx[name]] }
	ts, ok := parseStamp(get("a"), get("b"), get("y"), get("h"), get("m"), get("s"), get("ampm"))
	if !ok {
		return Stamp{}, "", false
	}
	return ts, get("rest"), true
}

// parseStamp builds both readings of a header date. Two-digit years are
// in the 2000s. ok is false when the time is invalid or the date exists
// in neither order.
func parseStamp(a, b, y, h, m, s, ampm string) (Stamp, bool) {
	first, _ := strconv.Atoi(a)
	second, _ := strconv.Atoi(b)
	year, _ := strconv.Atoi(y)
	if len(y) == 2 {
		year += 2000
	}
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	sec := 0
	if s != "" {
		sec, _ = strconv.Atoi(s)
	}

	switch strings.ToLower(ampm) {
	case "a":
		if hour < 1 || hour > 12 {
			return Stamp{}, false
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return Stamp{}, false
		}
		if hour != 12 {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return Stamp{}, false
	}

	var st Stamp
	st.readings[DayFirst], _ = validDate(year, second, first, hour, minute, sec)
	st.readings[MonthFirst], _ = validDate(year, first, second, hour, minute, sec)
	return st, !st.readings[DayFirst].IsZero() || !st.readings[MonthFirst].IsZero()
}

func validDate(year, month, day, hour, minute, sec int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// Classifier decides, line by line, whether a line starts a message,
// continues one, or is a system notice. It holds no mutable state.
type Classifier struct {
	matchers []Matcher
	notices  []string
}

// NewClassifier creates a classifier trying matchers in order. A nil
// notices slice selects DefaultNotices.
func NewClassifier(matchers []Matcher, notices []string) *Classifier {
	if notices == nil {
		notices = DefaultNotices
	}
	lowered := make([]string, len(notices))
	for i, n := range notices {
		lowered[i] = normalizeNotice(n)
	}
	return &Classifier{matchers: matchers, notices: lowered}
}

// DefaultClassifier uses the built-in formats and notice list.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultMatchers(), nil)
}

// Classify classifies a single line. The first matching format wins.
func (c *Classifier) Classify(line string) Line {
	for _, m := range c.matchers {
		ts, rest, ok := m.Match(line)
		if !ok {
			continue
		}
		sender, text, found := strings.Cut(rest, ":")
		sender = strings.TrimSpace(sender)
		if !found || sender == "" {
			return Line{Kind: Notice, Format: m.Name()}
		}
		text = strings.TrimSpace(text)
		if c.isNotice(sender, text) {
			return Line{Kind: Notice, Format: m.Name()}
		}
		return Line{
			Kind:      Header,
			Format:    m.Name(),
			Timestamp: ts.In(DayFirst),
			Stamp:     ts,
			Sender:    sender,
			Text:      text,
		}
	}
	return Line{Kind: Continuation, Text: line}
}

// systemMark is the left-to-right mark exports prefix to system lines.
const systemMark = "\u200e"

func (c *Classifier) isNotice(sender, body string) bool {
	sender = strings.ToLower(sender)
	marked := strings.HasPrefix(body, systemMark)
	norm := normalizeNotice(body)
	for _, n := range c.notices {
		if strings.Contains(sender, n) || norm == n || (marked && strings.Contains(norm, n)) {
			return true
		}
	}
	return false
}

// normalizeNotice lowercases s and strips system marks, surrounding space
// and trailing periods.
func normalizeNotice(s string) string {
	s = strings.ReplaceAll(s, systemMark, "")
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(s), "."))
}
