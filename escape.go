package mdpo

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// EscapeLinkTitles escapes `"` characters found inside link titles.
//
// The scan looks for `[display](href title)` shaped runs delimited by
// linkStart/linkEnd, strips the title's surrounding quote characters,
// escapes interior quotes and re-wraps the payload in double quotes. Text
// without link titles is returned unchanged. All matches are replaced, not
// just the first.
func EscapeLinkTitles(text, linkStart, linkEnd string) string {
	endQuoted := regexp.QuoteMeta(linkEnd)
	// The href token must stop at the closing paren or a title-less link
	// would swallow the text after it.
	re := regexp.MustCompile(
		`(` + regexp.QuoteMeta(linkStart) + `[^` + endQuoted + `]+` + endQuoted + `\([^\s)]+\s)([^\)]+)`,
	)
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		prefix, payload := m[1], m[2]
		if len(payload) < 2 {
			continue
		}
		inner := payload[1 : len(payload)-1]
		escaped := prefix + `"` + strings.ReplaceAll(inner, `"`, `\"`) + `"`
		text = strings.ReplaceAll(text, prefix+payload, escaped)
	}
	return text
}

// minNotMaxCharsInARow returns the smallest run length of char that does not
// occur consecutively in text, or 1 when text has no runs of char at all.
// Used to size code-span fences that cannot collide with literal backticks.
func minNotMaxCharsInARow(char byte, text string) int {
	runs := make(map[int]bool)
	maxRun, run := 0, 0
	flush := func() {
		if run == 0 {
			return
		}
		runs[run] = true
		if run > maxRun {
			maxRun = run
		}
		run = 0
	}
	for i := 0; i < len(text); i++ {
		if text[i] == char {
			run++
			continue
		}
		flush()
	}
	flush()
	if len(runs) == 0 {
		return 1
	}
	for n := 1; n <= maxRun+1; n++ {
		if !runs[n] {
			return n
		}
	}
	return 1
}

// escapedDelimiter returns the backslash-escaped form of a markup
// delimiter's first character, the form PO entries carry for literal
// delimiter characters.
func escapedDelimiter(delim string) string {
	if delim == "" {
		return delim
	}
	return `\` + firstChar(delim)
}

func firstChar(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
