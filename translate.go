package mdpo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Translator renders a Markdown document with each translatable block's
// inline content replaced by its catalog translation, re-wrapped to the
// configured width. Untranslated blocks fall back to their source text, so
// a partially translated catalog still yields a complete document.
type Translator struct {
	width      int
	extensions []string
	catalog    *Catalog
}

// NewTranslator returns a translator wrapping output at width columns.
func NewTranslator(catalog *Catalog, width int, extensions ...string) *Translator {
	if width <= 0 {
		width = defaultWrapWidth
	}
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Translator{width: width, extensions: extensions, catalog: catalog}
}

// Translate renders source through the catalog. Shorthand link references
// inside catalog entries are resolved first, so reference-style usages are
// already expanded when blocks are matched against the catalog. Front
// matter, code blocks, HTML blocks and thematic breaks pass through
// untranslated.
func (t *Translator) Translate(source []byte) ([]byte, error) {
	if err := ValidateInput(source); err != nil {
		return nil, err
	}
	front, body := splitFrontMatter(source)
	t.catalog.Merge(ResolveLinkReferenceTargets(t.catalog))

	doc := parseDocument(body, t.extensions)
	var buf bytes.Buffer
	buf.Write(front)
	// Keep a blank line after front matter only when the source had one.
	if len(front) > 0 && bytes.HasPrefix(body, []byte("\n")) {
		buf.WriteByte('\n')
	}
	if err := t.renderChildren(&buf, doc, body, "", ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Translator) lookup(msgid string) string {
	if msgstr, ok := t.catalog.Get(msgid); ok && msgstr != "" {
		return msgstr
	}
	return msgid
}

// renderChildren renders sibling blocks separated by blank lines. The first
// child starts at firstPrefix (which may carry a pending list marker); the
// rest start at indent.
func (t *Translator) renderChildren(buf *bytes.Buffer, parent ast.Node, source []byte, firstPrefix, indent string) error {
	first := true
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		prefix := indent
		if first {
			prefix = firstPrefix
		}
		mark := buf.Len()
		if !first {
			buf.WriteString(strings.TrimRight(indent, " "))
			buf.WriteByte('\n')
		}
		sepEnd := buf.Len()
		if err := t.renderBlock(buf, c, source, prefix, indent); err != nil {
			return err
		}
		// A block that rendered nothing (an empty paragraph left behind
		// by a consumed link reference definition) takes its separator
		// with it.
		if buf.Len() == sepEnd {
			buf.Truncate(mark)
			continue
		}
		first = false
	}
	return nil
}

func (t *Translator) renderBlock(buf *bytes.Buffer, node ast.Node, source []byte, prefix, indent string) error {
	switch n := node.(type) {
	case *ast.Heading:
		msgid, err := composeInline(n, source, t.extensions)
		if err != nil {
			return err
		}
		buf.WriteString(prefix)
		buf.WriteString(strings.Repeat("#", n.Level))
		buf.WriteByte(' ')
		buf.WriteString(t.lookup(msgid))
		buf.WriteByte('\n')
	case *ast.Paragraph, *ast.TextBlock:
		msgid, err := composeInline(node, source, t.extensions)
		if err != nil {
			return err
		}
		if msgid == "" {
			return nil
		}
		wrapped, err := t.wrapBlock(t.lookup(msgid), prefix, indent)
		if err != nil {
			return err
		}
		buf.WriteString(wrapped)
	case *ast.Blockquote:
		return t.renderChildren(buf, n, source, prefix+"> ", indent+"> ")
	case *ast.List:
		return t.renderList(buf, n, source, prefix, indent)
	case *ast.FencedCodeBlock:
		buf.WriteString(prefix)
		buf.WriteString("```")
		if lang := n.Language(source); lang != nil {
			buf.Write(lang)
		}
		buf.WriteByte('\n')
		writeSegments(buf, n.Lines(), source, indent)
		buf.WriteString(indent)
		buf.WriteString("```\n")
	case *ast.CodeBlock:
		writeSegments(buf, n.Lines(), source, indent+"    ")
	case *ast.HTMLBlock:
		writeSegments(buf, n.Lines(), source, indent)
		if n.HasClosure() {
			buf.WriteString(indent)
			buf.Write(n.ClosureLine.Value(source))
		}
	case *ast.ThematicBreak:
		buf.WriteString(prefix)
		buf.WriteString("---\n")
	default:
		// Extension blocks (tables and the like) pass through as raw
		// source lines.
		if block, ok := node.(interface{ Lines() *gmtext.Segments }); ok {
			writeSegments(buf, block.Lines(), source, indent)
		}
	}
	return nil
}

func (t *Translator) renderList(buf *bytes.Buffer, list *ast.List, source []byte, prefix, indent string) error {
	ordinal := list.Start
	if ordinal == 0 {
		ordinal = 1
	}
	first := true
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if !first && !list.IsTight {
			buf.WriteString(strings.TrimRight(indent, " "))
			buf.WriteByte('\n')
		}
		marker := string(list.Marker) + " "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d%c ", ordinal, list.Marker)
			ordinal++
		}
		itemPrefix := indent
		if first {
			itemPrefix = prefix
		}
		itemIndent := indent + strings.Repeat(" ", len(marker))
		if err := t.renderChildren(buf, item, source, itemPrefix+marker, itemIndent); err != nil {
			return err
		}
		first = false
	}
	return nil
}

// wrapBlock re-wraps translated inline Markdown for its block context. The
// wrapper counts width on the line excluding indentation, so both widths
// are reduced by their prefix.
func (t *Translator) wrapBlock(text, prefix, indent string) (string, error) {
	w := NewSpanWrapper(
		t.width-lineWidth(indent),
		WithFirstLineWidth(t.width-lineWidth(prefix)),
		WithIndent(indent),
		WithFirstLineIndent(prefix),
		WithExtensions(t.extensions...),
	)
	wrapped, err := w.Wrap(text)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(wrapped, "\n") {
		wrapped += "\n"
	}
	return wrapped, nil
}

func writeSegments(buf *bytes.Buffer, segments *gmtext.Segments, source []byte, indent string) {
	for _, seg := range segments.Sliced(0, segments.Len()) {
		buf.WriteString(indent)
		buf.Write(seg.Value(source))
	}
}
