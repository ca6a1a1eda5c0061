package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/splitmark/splitmark/internal/markup"
)

// Theme maps document roles to terminal styles.
type Theme struct {
	Base      tcell.Style
	Heading   tcell.Style
	ListItem  tcell.Style
	Quote     tcell.Style
	Code      tcell.Style
	Rule      tcell.Style
	Bold      tcell.Style
	Italic    tcell.Style
	Separator tcell.Style
	Status    tcell.Style
}

// ThemeByName returns the named theme; unknown names fall back to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

func darkTheme() Theme {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	return Theme{
		Base:      base,
		Heading:   base.Foreground(tcell.ColorAqua).Bold(true),
		ListItem:  base.Foreground(tcell.ColorYellow),
		Quote:     base.Foreground(tcell.ColorGreen).Italic(true),
		Code:      base.Foreground(tcell.ColorFuchsia),
		Rule:      base.Foreground(tcell.ColorGray),
		Bold:      base.Bold(true),
		Italic:    base.Italic(true),
		Separator: base.Foreground(tcell.ColorGray),
		Status:    base.Reverse(true),
	}
}

func lightTheme() Theme {
	base := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	return Theme{
		Base:      base,
		Heading:   base.Foreground(tcell.ColorNavy).Bold(true),
		ListItem:  base.Foreground(tcell.ColorDarkRed),
		Quote:     base.Foreground(tcell.ColorDarkGreen).Italic(true),
		Code:      base.Foreground(tcell.ColorPurple),
		Rule:      base.Foreground(tcell.ColorGray),
		Bold:      base.Bold(true),
		Italic:    base.Italic(true),
		Separator: base.Foreground(tcell.ColorGray),
		Status:    base.Reverse(true),
	}
}

// blockStyle returns the style for a classified line.
func (t Theme) blockStyle(kind markup.Kind) tcell.Style {
	switch kind {
	case markup.KindHeading:
		return t.Heading
	case markup.KindListItem:
		return t.ListItem
	case markup.KindQuote:
		return t.Quote
	case markup.KindCode:
		return t.Code
	case markup.KindRule:
		return t.Rule
	default:
		return t.Base
	}
}

// spanStyle layers an inline style onto a block style.
func (t Theme) spanStyle(block tcell.Style, style markup.Style) tcell.Style {
	switch style {
	case markup.StyleBold:
		return block.Bold(true)
	case markup.StyleItalic:
		return block.Italic(true)
	case markup.StyleCode:
		return t.Code
	default:
		return block
	}
}
