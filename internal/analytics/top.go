package analytics

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/matheus3301/chatlens/internal/export"
)

// DefaultTopN is used when TopWords is asked for n <= 0.
const DefaultTopN = 20

var wordRe = regexp.MustCompile(`\p{L}{3,}`)

var topStopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the and for are but not you all can had her was one our out has
		have been were they this that with from will would there their what about which when make
		like just know take into year your some could them than then now look only come its also
		back after use how man media omitted deleted message`) {
		topStopwords[w] = struct{}{}
	}
}

// WordCount is a word and how often it appears.
type WordCount struct {
	Word  string
	Count int
}

// TopWords returns the n most frequent words of three or more letters,
// lowercased and without common stopwords. An empty sender means all
// senders. Ties are broken alphabetically.
func TopWords(seq export.Sequence, sender string, n int) []WordCount {
	if n <= 0 {
		n = DefaultTopN
	}
	counts := make(map[string]int)
	for _, m := range seq.All() {
		if sender != "" && m.Sender != sender {
			continue
		}
		for _, w := range wordRe.FindAllString(strings.ToLower(m.Body), -1) {
			if _, stop := topStopwords[w]; stop {
				continue
			}
			counts[w]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	slices.SortFunc(out, func(a, b WordCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
