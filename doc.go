// Package mdpo translates Markdown documents through gettext PO catalogs.
//
// The package re-flows parsed Markdown inline content into width-constrained
// lines while preserving inline markup (emphasis, code spans, links, images,
// wiki links), extracts translatable block content into PO entries, and
// resolves shorthand link references across paired source/target entries.
//
// Parsing is delegated to goldmark; this package only consumes its event
// stream and never renders HTML.
//
// Example:
//
//	w := mdpo.NewSpanWrapper(80)
//	out, err := w.Wrap("Some *emphasized* Markdown with a [link](https://example.com).")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
package mdpo
