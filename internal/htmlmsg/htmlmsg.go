// Package htmlmsg formats localized messages that carry inline HTML markup
// and turns them into plain text plus style spans.
package htmlmsg

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Style is an inline text style.
type Style int

const (
	Bold Style = iota + 1
	Italic
	Link
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Link:
		return "link"
	default:
		return "none"
	}
}

// Span styles Text[Start:End]. Offsets are in bytes.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Style Style  `json:"style"`
	Href  string `json:"href,omitempty"`
}

// Message is styled text.
type Message struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// Formatter renders catalog messages for one language.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter for tag. Keys missing from the catalog
// are used as format strings.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format looks key up, applies args and parses the resulting HTML. String
// args are escaped so they cannot introduce markup.
func (f *Formatter) Format(key string, args ...any) Message {
	escaped := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			a = html.EscapeString(s)
		}
		escaped[i] = a
	}
	return Parse(f.printer.Sprintf(key, escaped...))
}

// String formats key without parsing markup.
func (f *Formatter) String(key string, args ...any) string {
	return f.printer.Sprintf(key, args...)
}

type openTag struct {
	tag   atom.Atom
	style Style
	start int
	href  string
}

// Parse converts an HTML fragment to a Message. <b> and <strong> become bold,
// <i> and <em> italic, <a href> a link and <br> a newline. Other tags keep
// only their text.
func Parse(fragment string) Message {
	var (
		b     strings.Builder
		open  []openTag
		spans []Span
	)
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			sortSpans(spans)
			return Message{Text: b.String(), Spans: spans}
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.Br {
				b.WriteByte('\n')
				continue
			}
			style := styleOf(tok.DataAtom)
			if style == 0 || tt == html.SelfClosingTagToken {
				continue
			}
			ot := openTag{tag: tok.DataAtom, style: style, start: b.Len()}
			if style == Link {
				for _, a := range tok.Attr {
					if a.Key == "href" {
						ot.href = a.Val
					}
				}
			}
			open = append(open, ot)
		case html.EndTagToken:
			tok := z.Token()
			for i := len(open) - 1; i >= 0; i-- {
				if open[i].tag != tok.DataAtom {
					continue
				}
				if end := b.Len(); end > open[i].start {
					spans = append(spans, Span{Start: open[i].start, End: end, Style: open[i].style, Href: open[i].href})
				}
				open = append(open[:i], open[i+1:]...)
				break
			}
		}
	}
}

func styleOf(a atom.Atom) Style {
	switch a {
	case atom.B, atom.Strong:
		return Bold
	case atom.I, atom.Em:
		return Italic
	case atom.A:
		return Link
	default:
		return 0
	}
}

func sortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
}

// Emphasize marks each param bold in text. Params are searched in order, each
// after the end of the previous match; params not found are skipped.
func Emphasize(text string, params ...string) Message {
	m := Message{Text: text}
	from := 0
	for _, p := range params {
		if p == "" {
			continue
		}
		i := strings.Index(text[from:], p)
		if i < 0 {
			continue
		}
		start := from + i
		m.Spans = append(m.Spans, Span{Start: start, End: start + len(p), Style: Bold})
		from = start + len(p)
	}
	return m
}

// Markdown renders the message with Markdown emphasis and links.
func (m Message) Markdown() string {
	type mark struct {
		pos   int
		close bool
		order int
		text  string
	}
	var marks []mark
	for i, s := range m.Spans {
		var open, close string
		switch s.Style {
		case Bold:
			open, close = "**", "**"
		case Italic:
			open, close = "_", "_"
		case Link:
			open, close = "[", "]("+s.Href+")"
		default:
			continue
		}
		marks = append(marks, mark{pos: s.Start, order: i, text: open}, mark{pos: s.End, close: true, order: i, text: close})
	}
	sort.SliceStable(marks, func(i, j int) bool {
		a, b := marks[i], marks[j]
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		if a.close != b.close {
			return a.close
		}
		if a.close {
			return a.order > b.order
		}
		return a.order < b.order
	})
	var b strings.Builder
	last := 0
	for _, mk := range marks {
		b.WriteString(m.Text[last:mk.pos])
		b.WriteString(mk.text)
		last = mk.pos
	}
	b.WriteString(m.Text[last:])
	return b.String()
}
