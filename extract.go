package mdpo

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// composeWidth is effectively unbounded; used when reconstructing a block's
// inline Markdown on a single line.
const composeWidth = 1 << 20

// composeInline rebuilds the inline Markdown of one block by replaying its
// parse events through an unbounded-width wrapper.
func composeInline(block ast.Node, source []byte, extensions []string) (string, error) {
	w := NewSpanWrapper(composeWidth, WithExtensions(extensions...))
	walker := &eventWalker{handler: w, source: source}
	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		if err := walker.walk(c); err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(w.finish(), "\n"), nil
}

// Extractor collects translatable inline content from Markdown documents.
type Extractor struct {
	extensions []string
}

// NewExtractor returns an extractor with the named Markdown extensions
// enabled in the underlying parser.
func NewExtractor(extensions ...string) *Extractor {
	return &Extractor{extensions: extensions}
}

// Extract returns the document's translatable texts in document order:
// paragraph, heading, list item and block quote content, followed by link
// reference definition lines. Code blocks, HTML blocks and front matter are
// not translatable and are skipped.
func (e *Extractor) Extract(source []byte) ([]string, error) {
	if err := ValidateInput(source); err != nil {
		return nil, err
	}
	_, body := splitFrontMatter(source)
	doc := parseDocument(body, e.extensions)
	var msgids []string
	if err := e.collect(doc, body, &msgids); err != nil {
		return nil, err
	}
	for _, ref := range ParseLinkReferences(string(body)) {
		msgids = append(msgids, formatLinkReference(ref))
	}
	return msgids, nil
}

func (e *Extractor) collect(parent ast.Node, source []byte, out *[]string) error {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			msgid, err := composeInline(c, source, e.extensions)
			if err != nil {
				return err
			}
			if msgid != "" {
				*out = append(*out, msgid)
			}
		case *ast.Blockquote, *ast.List, *ast.ListItem:
			if err := e.collect(c, source, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatLinkReference(ref LinkReference) string {
	line := "[" + ref.Label + "]: " + ref.Target
	if ref.Title != "" {
		line += ` "` + ref.Title + `"`
	}
	return line
}

// UpdateCatalog builds a catalog in extraction order, carrying over
// translations already present in prev.
func UpdateCatalog(msgids []string, prev *Catalog) *Catalog {
	next := NewCatalog()
	for _, msgid := range msgids {
		var msgstr string
		if prev != nil {
			if s, ok := prev.Get(msgid); ok {
				msgstr = s
			}
		}
		next.Set(msgid, msgstr)
	}
	return next
}
