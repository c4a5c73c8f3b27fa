package mdpo

import (
	"strings"

	"go.abhg.dev/goldmark/wikilink"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// BlockKind identifies a structural Markdown unit in the event stream.
type BlockKind int

const (
	BlockDocument BlockKind = iota
	BlockParagraph
	BlockHeading
	BlockQuote
	BlockList
	BlockListItem
	BlockCode
	BlockHTML
	BlockThematicBreak
)

// SpanKind identifies an inline Markdown construct in the event stream.
type SpanKind int

const (
	SpanCode SpanKind = iota
	SpanLink
	SpanStrong
	SpanEmphasis
	SpanWikilink
	SpanImage
)

// BlockDetails carries block attributes, currently only the heading level.
type BlockDetails struct {
	Level int
}

// SpanDetails carries span attributes: link href and title, image source and
// title, wiki link target.
type SpanDetails struct {
	Href   string
	Title  string
	Src    string
	Target string
}

// EventHandler receives parse events in document order. Implementations must
// not retain the detail structs beyond the callback.
type EventHandler interface {
	EnterBlock(kind BlockKind, details BlockDetails)
	LeaveBlock(kind BlockKind, details BlockDetails)
	EnterSpan(kind SpanKind, details SpanDetails)
	LeaveSpan(kind SpanKind, details SpanDetails)
	Text(block BlockKind, text string)
}

// buildMarkdown assembles a goldmark instance with the named extensions.
// Unknown names are ignored so catalogs produced with a newer toolchain
// still load.
func buildMarkdown(names []string) goldmark.Markdown {
	var extenders []goldmark.Extender
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "tables":
			extenders = append(extenders, extension.Table)
		case "strikethrough":
			extenders = append(extenders, extension.Strikethrough)
		case "tasklists":
			extenders = append(extenders, extension.TaskList)
		case "wikilinks":
			extenders = append(extenders, &wikilink.Extender{})
		}
	}
	return goldmark.New(goldmark.WithExtensions(extenders...))
}

func parseDocument(source []byte, extensions []string) ast.Node {
	md := buildMarkdown(extensions)
	return md.Parser().Parse(text.NewReader(source))
}

// eventWalker replays a goldmark AST as EventHandler callbacks. Traversal is
// depth-first in document order; no callback runs concurrently with another.
type eventWalker struct {
	handler EventHandler
	source  []byte
	blocks  []BlockKind
}

func (w *eventWalker) walk(n ast.Node) error {
	return ast.Walk(n, w.visit)
}

func (w *eventWalker) current() BlockKind {
	if len(w.blocks) == 0 {
		return BlockDocument
	}
	return w.blocks[len(w.blocks)-1]
}

func (w *eventWalker) block(kind BlockKind, details BlockDetails, entering bool) {
	if entering {
		w.blocks = append(w.blocks, kind)
		w.handler.EnterBlock(kind, details)
		return
	}
	w.handler.LeaveBlock(kind, details)
	if len(w.blocks) > 0 {
		w.blocks = w.blocks[:len(w.blocks)-1]
	}
}

func (w *eventWalker) span(kind SpanKind, details SpanDetails, entering bool) {
	if entering {
		w.handler.EnterSpan(kind, details)
		return
	}
	w.handler.LeaveSpan(kind, details)
}

func (w *eventWalker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
		w.block(BlockDocument, BlockDetails{}, entering)
	case *ast.Paragraph:
		w.block(BlockParagraph, BlockDetails{}, entering)
	case *ast.TextBlock:
		w.block(BlockParagraph, BlockDetails{}, entering)
	case *ast.Heading:
		w.block(BlockHeading, BlockDetails{Level: node.Level}, entering)
	case *ast.Blockquote:
		w.block(BlockQuote, BlockDetails{}, entering)
	case *ast.List:
		w.block(BlockList, BlockDetails{}, entering)
	case *ast.ListItem:
		w.block(BlockListItem, BlockDetails{}, entering)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.block(BlockCode, BlockDetails{}, entering)
		if entering {
			return ast.WalkSkipChildren, nil
		}
	case *ast.HTMLBlock:
		w.block(BlockHTML, BlockDetails{}, entering)
		if entering {
			return ast.WalkSkipChildren, nil
		}
	case *ast.ThematicBreak:
		w.block(BlockThematicBreak, BlockDetails{}, entering)
		if entering {
			return ast.WalkSkipChildren, nil
		}

	case *ast.Text:
		if entering {
			w.handler.Text(w.current(), string(node.Segment.Value(w.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.handler.Text(w.current(), " ")
			}
		}
		return ast.WalkSkipChildren, nil
	case *ast.String:
		if entering {
			w.handler.Text(w.current(), string(node.Value))
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeSpan:
		if entering {
			w.handler.EnterSpan(SpanCode, SpanDetails{})
			w.handler.Text(w.current(), codeSpanContent(node, w.source))
			return ast.WalkSkipChildren, nil
		}
		w.handler.LeaveSpan(SpanCode, SpanDetails{})
	case *ast.Emphasis:
		kind := SpanEmphasis
		if node.Level >= 2 {
			kind = SpanStrong
		}
		w.span(kind, SpanDetails{}, entering)
	case *ast.Link:
		details := SpanDetails{Href: string(node.Destination), Title: string(node.Title)}
		w.span(SpanLink, details, entering)
	case *ast.AutoLink:
		details := SpanDetails{Href: string(node.URL(w.source))}
		if entering {
			w.handler.EnterSpan(SpanLink, details)
			w.handler.Text(w.current(), string(node.Label(w.source)))
			return ast.WalkSkipChildren, nil
		}
		w.handler.LeaveSpan(SpanLink, details)
	case *ast.Image:
		details := SpanDetails{Src: string(node.Destination), Title: string(node.Title)}
		w.span(SpanImage, details, entering)
	case *ast.RawHTML:
		if entering {
			var sb strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				sb.Write(seg.Value(w.source))
			}
			w.handler.Text(w.current(), sb.String())
		}
		return ast.WalkSkipChildren, nil
	case *wikilink.Node:
		w.span(SpanWikilink, SpanDetails{Target: string(node.Target)}, entering)
	}
	return ast.WalkContinue, nil
}

// codeSpanContent joins the raw text of a code span, folding interior
// newlines to spaces the way inline code is conventionally reflowed.
func codeSpanContent(n *ast.CodeSpan, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}
