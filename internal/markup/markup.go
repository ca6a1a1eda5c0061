// Package markup classifies markdown source into styled lines for the
// preview pane.
//
// This is presentation-level classification, not a full CommonMark
// parser: headings, list items, block quotes, fenced code, horizontal
// rules, and inline bold/italic/code spans. Unterminated inline markers
// render literally.
package markup

import (
	"strings"
)

// Kind identifies the block-level role of a line.
type Kind int

const (
	// KindText is an ordinary paragraph line.
	KindText Kind = iota
	// KindBlank is an empty line.
	KindBlank
	// KindHeading is an ATX heading; Level holds 1..6.
	KindHeading
	// KindListItem is a bulleted or numbered list entry.
	KindListItem
	// KindQuote is a block-quote line.
	KindQuote
	// KindCode is a line inside (or delimiting) a fenced code block.
	KindCode
	// KindRule is a horizontal rule.
	KindRule
)

// Style identifies the inline styling of a span.
type Style int

const (
	// StylePlain is unstyled text.
	StylePlain Style = iota
	// StyleBold is **strong** text.
	StyleBold
	// StyleItalic is *emphasized* text.
	StyleItalic
	// StyleCode is `inline code`.
	StyleCode
)

// Span is a run of text with one inline style.
type Span struct {
	Text  string
	Style Style
}

// Line is one classified source line.
type Line struct {
	Kind  Kind
	Level int // heading level; zero otherwise
	Spans []Span
}

// Render classifies an entire document, line by line. Fenced code state
// carries across lines; everything else is local to its line.
func Render(doc string) []Line {
	raw := strings.Split(doc, "\n")
	lines := make([]Line, 0, len(raw))

	inFence := false
	for _, src := range raw {
		trimmed := strings.TrimSpace(src)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			lines = append(lines, Line{Kind: KindCode, Spans: plain(src)})
			continue
		}
		if inFence {
			lines = append(lines, Line{Kind: KindCode, Spans: plain(src)})
			continue
		}

		lines = append(lines, classifyLine(src, trimmed))
	}

	return lines
}

// classifyLine handles a single line outside any code fence.
func classifyLine(src, trimmed string) Line {
	switch {
	case trimmed == "":
		return Line{Kind: KindBlank}

	case isRule(trimmed):
		return Line{Kind: KindRule, Spans: plain(src)}

	case strings.HasPrefix(trimmed, "#"):
		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level <= 6 && level < len(trimmed) && trimmed[level] == ' ' {
			text := strings.TrimSpace(trimmed[level:])
			return Line{Kind: KindHeading, Level: level, Spans: Inline(text)}
		}
		return Line{Kind: KindText, Spans: Inline(src)}

	case strings.HasPrefix(trimmed, "> "):
		return Line{Kind: KindQuote, Spans: Inline(strings.TrimPrefix(trimmed, "> "))}

	case isListItem(trimmed):
		return Line{Kind: KindListItem, Spans: Inline(src)}

	default:
		return Line{Kind: KindText, Spans: Inline(src)}
	}
}

// isRule reports a horizontal rule: three or more of the same marker.
func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	marker := trimmed[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != marker {
			return false
		}
	}
	return true
}

// isListItem reports a bulleted or numbered list marker.
func isListItem(trimmed string) bool {
	if len(trimmed) >= 2 {
		switch trimmed[0] {
		case '-', '*', '+':
			if trimmed[1] == ' ' {
				return true
			}
		}
	}

	// Numbered: digits followed by ". "
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(trimmed) && trimmed[i] == '.' && trimmed[i+1] == ' '
}

// plain wraps text in a single unstyled span. Empty text yields no spans.
func plain(text string) []Span {
	if text == "" {
		return nil
	}
	return []Span{{Text: text, Style: StylePlain}}
}

// Inline splits text into styled spans for bold, italic and code runs.
func Inline(text string) []Span {
	var spans []Span
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			spans = append(spans, Span{Text: buf.String(), Style: StylePlain})
			buf.Reset()
		}
	}

	for i := 0; i < len(text); {
		switch {
		case text[i] == '`':
			if end := strings.IndexByte(text[i+1:], '`'); end >= 0 {
				flush()
				spans = append(spans, Span{Text: text[i+1 : i+1+end], Style: StyleCode})
				i += end + 2
				continue
			}
			buf.WriteByte(text[i])
			i++

		case strings.HasPrefix(text[i:], "**"):
			if end := strings.Index(text[i+2:], "**"); end > 0 {
				flush()
				spans = append(spans, Span{Text: text[i+2 : i+2+end], Style: StyleBold})
				i += end + 4
				continue
			}
			buf.WriteString("**")
			i += 2

		case text[i] == '*':
			if end := strings.IndexByte(text[i+1:], '*'); end > 0 {
				flush()
				spans = append(spans, Span{Text: text[i+1 : i+1+end], Style: StyleItalic})
				i += end + 2
				continue
			}
			buf.WriteByte(text[i])
			i++

		default:
			buf.WriteByte(text[i])
			i++
		}
	}

	flush()
	return spans
}
