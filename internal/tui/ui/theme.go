package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme is the chatlens palette.
type Theme struct {
	BgColor     tcell.Color
	FgColor     tcell.Color
	BorderColor tcell.Color
	TitleColor  tcell.Color

	CrumbActiveFg   tcell.Color
	CrumbActiveBg   tcell.Color
	CrumbInactiveFg tcell.Color
	CrumbInactiveBg tcell.Color

	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	CounterColor      tcell.Color
	PromptBorderColor tcell.Color

	FlashInfoColor tcell.Color
	FlashWarnColor tcell.Color
	FlashErrColor  tcell.Color

	// Corpus states.
	ReadyColor   tcell.Color
	LoadingColor tcell.Color
	FailedColor  tcell.Color

	BarColor    tcell.Color
	SenderColor tcell.Color
	AnswerColor tcell.Color
}

// DefaultTheme returns a dark theme in the style of k9s.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:     tcell.ColorBlack,
		FgColor:     tcell.ColorCadetBlue,
		BorderColor: tcell.ColorDodgerBlue,
		TitleColor:  tcell.ColorFuchsia,

		CrumbActiveFg:   tcell.ColorBlack,
		CrumbActiveBg:   tcell.ColorOrange,
		CrumbInactiveFg: tcell.ColorBlack,
		CrumbInactiveBg: tcell.ColorAqua,

		MenuKeyColor:      tcell.ColorDodgerBlue,
		NumericKeyColor:   tcell.ColorFuchsia,
		CounterColor:      tcell.ColorPapayaWhip,
		PromptBorderColor: tcell.ColorDodgerBlue,

		FlashInfoColor: tcell.ColorNavajoWhite,
		FlashWarnColor: tcell.ColorOrange,
		FlashErrColor:  tcell.ColorOrangeRed,

		ReadyColor:   tcell.ColorMediumSeaGreen,
		LoadingColor: tcell.ColorGold,
		FailedColor:  tcell.ColorOrangeRed,

		BarColor:    tcell.ColorMediumSeaGreen,
		SenderColor: tcell.ColorOrange,
		AnswerColor: tcell.ColorWhiteSmoke,
	}
}

// StateColor colors a corpus state name; unknown states (IDLE) use the
// foreground color.
func (t *Theme) StateColor(state string) tcell.Color {
	switch state {
	case "READY":
		return t.ReadyColor
	case "LOADING":
		return t.LoadingColor
	case "FAILED":
		return t.FailedColor
	}
	return t.FgColor
}

// ColorTag returns c as a tview color tag value, by name when tcell has one.
func ColorTag(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
