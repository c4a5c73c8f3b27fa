package mdpo

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

const (
	defaultWrapWidth = 80

	// Fraction of the width kept free for the word being emitted while a
	// link span is open, so the closing `](href)` suffix has room to land.
	linkWidthFactor = 0.95
)

// WrapOption configures a SpanWrapper.
type WrapOption func(*SpanWrapper)

// WithFirstLineWidth sets the maximum length of the first output line.
func WithFirstLineWidth(width int) WrapOption {
	return func(w *SpanWrapper) {
		w.firstLineWidth = width
	}
}

// WithIndent sets the literal prefix of continuation lines.
func WithIndent(indent string) WrapOption {
	return func(w *SpanWrapper) {
		w.indent = indent
	}
}

// WithFirstLineIndent sets the literal prefix of the first output line.
func WithFirstLineIndent(indent string) WrapOption {
	return func(w *SpanWrapper) {
		w.firstLineIndent = indent
	}
}

// WithExtensions enables named Markdown extensions in the underlying parser
// (tables, strikethrough, tasklists, wikilinks).
func WithExtensions(names ...string) WrapOption {
	return func(w *SpanWrapper) {
		w.extensions = names
	}
}

// WithBoldDelimiters overrides the strong-emphasis markers.
func WithBoldDelimiters(start, end string) WrapOption {
	return func(w *SpanWrapper) {
		w.boldStart, w.boldEnd = start, end
	}
}

// WithItalicDelimiters overrides the emphasis markers.
func WithItalicDelimiters(start, end string) WrapOption {
	return func(w *SpanWrapper) {
		w.italicStart, w.italicEnd = start, end
		w.italicStartEscaped = escapedDelimiter(start)
		w.italicEndEscaped = escapedDelimiter(end)
	}
}

// WithCodeDelimiters overrides the code-span markers. Only the first
// character is used; fence sizing multiplies it as needed.
func WithCodeDelimiters(start, end string) WrapOption {
	return func(w *SpanWrapper) {
		w.codeStart, w.codeEnd = firstChar(start), firstChar(end)
		w.codeStartEscaped = escapedDelimiter(w.codeStart)
		w.codeEndEscaped = escapedDelimiter(w.codeEnd)
	}
}

// WithLinkDelimiters overrides the link display-text markers.
func WithLinkDelimiters(start, end string) WrapOption {
	return func(w *SpanWrapper) {
		w.linkStart, w.linkEnd = start, end
	}
}

// WithWikilinkDelimiters overrides the wiki link markers.
func WithWikilinkDelimiters(start, end string) WrapOption {
	return func(w *SpanWrapper) {
		w.wikilinkStart, w.wikilinkEnd = start, end
	}
}

// SpanWrapper re-flows the inline content of one Markdown block into
// width-constrained lines, preserving inline markup. It consumes the parse
// event stream defined by EventHandler; use one instance per wrapped block.
//
// Width is accounted on the rendered line including markup delimiters.
// Indentation is prepended at flush time and is not counted while the line
// accumulates. A word longer than the width produces an over-length line
// rather than a mid-word split.
type SpanWrapper struct {
	width           int
	firstLineWidth  int
	indent          string
	firstLineIndent string
	extensions      []string

	boldStart          string
	boldEnd            string
	italicStart        string
	italicEnd          string
	italicStartEscaped string
	italicEndEscaped   string
	codeStart          string
	codeEnd            string
	codeStartEscaped   string
	codeEndEscaped     string
	linkStart          string
	linkEnd            string
	wikilinkStart      string
	wikilinkEnd        string

	out     strings.Builder
	current string
	emitted bool

	insideCodeSpan bool
	insideLink     bool
	linkHref       string
	linkTitle      string
	insideWikilink bool
	wikilinkTarget string
}

// NewSpanWrapper returns a wrapper producing lines of at most width
// characters. The first line width defaults to width.
func NewSpanWrapper(width int, opts ...WrapOption) *SpanWrapper {
	if width <= 0 {
		width = defaultWrapWidth
	}
	w := &SpanWrapper{
		width:          width,
		firstLineWidth: width,

		boldStart:     "**",
		boldEnd:       "**",
		italicStart:   "*",
		italicEnd:     "*",
		codeStart:     "`",
		codeEnd:       "`",
		linkStart:     "[",
		linkEnd:       "]",
		wikilinkStart: "[[",
		wikilinkEnd:   "]]",
	}
	w.italicStartEscaped = escapedDelimiter(w.italicStart)
	w.italicEndEscaped = escapedDelimiter(w.italicEnd)
	w.codeStartEscaped = escapedDelimiter(w.codeStart)
	w.codeEndEscaped = escapedDelimiter(w.codeEnd)
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

func (w *SpanWrapper) appliedWidth() int {
	if w.emitted {
		return w.width
	}
	return w.firstLineWidth
}

func (w *SpanWrapper) appliedIndent() string {
	if w.emitted {
		return w.indent
	}
	return w.firstLineIndent
}

// flushLine moves the line under construction to the output, indented and
// newline-terminated.
func (w *SpanWrapper) flushLine() {
	w.out.WriteString(w.appliedIndent())
	w.out.WriteString(w.current)
	w.out.WriteByte('\n')
	w.current = ""
	w.emitted = true
}

// EnterBlock is a no-op; block layout is the caller's responsibility.
func (w *SpanWrapper) EnterBlock(BlockKind, BlockDetails) {}

// LeaveBlock is a no-op; block layout is the caller's responsibility.
func (w *SpanWrapper) LeaveBlock(BlockKind, BlockDetails) {}

// EnterSpan opens an inline construct, appending its start delimiter and
// capturing link or wiki link attributes for the span's text events.
func (w *SpanWrapper) EnterSpan(kind SpanKind, details SpanDetails) {
	switch kind {
	case SpanCode:
		w.insideCodeSpan = true
		w.current += w.codeStart
	case SpanLink:
		w.current += w.linkStart
		w.insideLink = true
		w.linkHref = details.Href
		w.linkTitle = details.Title
	case SpanStrong:
		w.current += w.boldStart
	case SpanEmphasis:
		w.current += w.italicStart
	case SpanWikilink:
		w.current += w.wikilinkStart
		w.insideWikilink = true
		w.wikilinkTarget = details.Target
	case SpanImage:
		w.current += "!["
	}
}

// LeaveSpan closes an inline construct. Links that already collapsed to an
// autolink keep the `<href>` form; otherwise the `](href "title")` suffix is
// appended with the title escaped.
func (w *SpanWrapper) LeaveSpan(kind SpanKind, details SpanDetails) {
	switch kind {
	case SpanCode:
		w.insideCodeSpan = false
		w.current += w.codeEnd
	case SpanLink:
		if !strings.HasSuffix(w.current, ">") {
			w.current += w.linkEnd + "(" + w.linkHref
			if w.linkTitle != "" {
				w.current += ` "` + EscapeLinkTitles(w.linkTitle, w.linkStart, w.linkEnd) + `"`
			}
			w.current += ")"
		}
		w.insideLink = false
		w.linkHref = ""
		w.linkTitle = ""
	case SpanStrong:
		w.current += w.boldEnd
	case SpanEmphasis:
		w.current += w.italicEnd
	case SpanWikilink:
		w.current += w.wikilinkEnd
		w.insideWikilink = false
		w.wikilinkTarget = ""
	case SpanImage:
		w.current += "](" + details.Src
		if details.Title != "" {
			w.current += ` "` + EscapeLinkTitles(details.Title, w.linkStart, w.linkEnd) + `"`
		}
		w.current += ")"
	}
}

// Text handles a literal text run. The four branches are mutually exclusive
// and checked in priority order: code span, wiki link, autolink collapse,
// plain word-wrapping.
func (w *SpanWrapper) Text(block BlockKind, text string) {
	switch {
	case w.insideCodeSpan:
		w.codeSpanText(text)
	case w.insideWikilink:
		w.wikilinkText(text)
	case w.insideLink && text == w.linkHref && w.linkTitle == "":
		w.collapseAutolink(text)
	default:
		w.plainText(text)
	}
}

func (w *SpanWrapper) codeSpanText(text string) {
	if lineWidth(w.current)+lineWidth(text)+1 > w.appliedWidth() {
		w.current = strings.TrimRight(strings.TrimRight(w.current, w.codeStart), " ")
		w.flushLine()
		w.current = w.codeStart
	}
	fence := strings.Repeat(w.codeStart, minNotMaxCharsInARow(w.codeStart[0], text)-1)
	w.current += fence + text + fence
}

func (w *SpanWrapper) wikilinkText(text string) {
	if text != w.wikilinkTarget {
		w.current += w.wikilinkTarget + "|" + text
		return
	}
	w.current += text
}

// collapseAutolink rewrites the pending `[` into the `<href>` form used when
// display text and href are identical and no title is present.
func (w *SpanWrapper) collapseAutolink(text string) {
	trimmed := strings.TrimRight(w.current, " "+w.linkStart)
	if trimmed == "" {
		w.current = "<" + text + ">"
		return
	}
	w.current = trimmed + " <" + text + ">"
}

func (w *SpanWrapper) plainText(text string) {
	switch text {
	case w.italicStart:
		text = w.italicStartEscaped
	case w.codeStart:
		text = w.codeStartEscaped
	case w.codeEnd:
		text = w.codeEndEscaped
	case w.italicEnd:
		text = w.italicEndEscaped
	}

	words := strings.Split(text, " ")
	width := float64(w.appliedWidth())
	if w.insideLink {
		if float64(lineWidth(w.current)+lineWidth(words[0])+1) > width {
			// Reopen the link display text on a fresh line.
			w.current = strings.TrimRight(trimLastChar(w.current), " ")
			w.flushLine()
			w.current = w.linkStart
		}
		width *= linkWidthFactor
	}

	for i, word := range words {
		if float64(lineWidth(w.current)+lineWidth(word)+1) > width {
			// Never flush before the first word of a run unless the
			// buffer already ends in a space: the run may continue a
			// word split across callback invocations.
			if i > 0 || strings.HasSuffix(w.current, " ") {
				w.flushLine()
				width = float64(w.appliedWidth())
				if w.insideLink {
					width *= linkWidthFactor
				}
			}
		} else if i > 0 {
			w.current += " "
		}
		w.current += word
	}
}

// Wrap parses text as Markdown, replays the parse events into the wrapper
// and returns the wrapped output. A trailing newline is appended only when
// the first line width equals the continuation width, i.e. the block is not
// continuing a list marker or similar outer context.
func (w *SpanWrapper) Wrap(text string) (string, error) {
	source := []byte(text)
	doc := parseDocument(source, w.extensions)
	walker := &eventWalker{handler: w, source: source}
	if err := walker.walk(doc); err != nil {
		return "", err
	}
	return w.finish(), nil
}

// finish flushes the remaining line buffer and returns accumulated output.
func (w *SpanWrapper) finish() string {
	if w.current != "" {
		w.out.WriteString(w.appliedIndent())
		w.out.WriteString(w.current)
		w.current = ""
	}
	if w.firstLineWidth == w.width {
		w.out.WriteByte('\n')
	}
	return w.out.String()
}

func lineWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

func trimLastChar(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}
