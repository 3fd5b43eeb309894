package views

import (
	"strings"
	"unicode/utf8"
)

// sanitizeForTerminal removes or replaces codepoints that cause rendering
// issues in tcell/tview:
//   - skin tone modifiers, ZWJ and variation selectors, so multi-codepoint
//     emoji collapse to one 2-cell glyph (👍🏻 becomes 👍)
//   - bidi marks that phone exports put around names and timestamps
//   - narrow and regular no-break spaces, replaced by a plain space
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '\u202F' || r == '\u00A0':
			b.WriteByte(' ')
		case isProblematicRune(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isProblematicRune(r rune) bool {
	switch {
	// Skin tone modifiers.
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	// Zero Width Joiner.
	case r == 0x200D:
		return true
	// LRM, RLM and the bidi embedding/isolate controls.
	case r == 0x200E || r == 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E, r >= 0x2066 && r <= 0x2069:
		return true
	// Variation Selectors.
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	// Variation Selectors Supplement.
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	default:
		return false
	}
}
