package mdpo

import (
	"regexp"
	"strings"
)

var (
	// [label]: target "optional title", up to 3 leading spaces.
	linkReferenceRe = regexp.MustCompile(`^\s{0,3}\[([^\]]+)\]:\s+<?([^\s>]+)>?\s*["'(]?([^"')]+)?`)
	// [display][label] shorthand usage.
	linkReferencedLinkRe = regexp.MustCompile(`\[([^\]]+)\]\[([^\]\s]+)\]`)
)

// LinkReference is a link reference definition: label, target and an
// optional title. Definitions live only for the duration of one resolution
// or extraction pass.
type LinkReference struct {
	Label  string
	Target string
	Title  string
}

// ParseLinkReferences returns the link reference definitions found in a
// Markdown content, one per defining line.
func ParseLinkReferences(content string) []LinkReference {
	var refs []LinkReference
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] != '[' {
			continue
		}
		m := linkReferenceRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		refs = append(refs, LinkReference{Label: m[1], Target: m[2], Title: m[3]})
	}
	return refs
}

// referencePair couples the source-side and target-side definitions found in
// one catalog entry; the side correlation is the entry itself, not the label
// text.
type referencePair struct {
	source LinkReference
	target LinkReference
}

// ResolveLinkReferenceTargets rewrites shorthand link references inside
// catalog entries into direct links.
//
// Definitions are discovered from entries whose source and target texts both
// parse as `[label]: target` lines. Usages `[display][label]` are rewritten
// to `[display](target)` on each side independently: source usages against
// source-side definitions, target usages against target-side ones. Entries
// with usages on only one side are skipped, and usages without a matching
// definition pass through unchanged; neither case is an error.
//
// Only changed entries are returned, keyed by the rewritten source text.
// When two entries rewrite to the same source text the later one wins.
func ResolveLinkReferenceTargets(catalog *Catalog) *Catalog {
	var pairs []referencePair

	type queuedEntry struct {
		msgid      string
		msgstr     string
		msgidUses  [][]string
		msgstrUses [][]string
	}
	var queue []queuedEntry

	catalog.Each(func(msgid, msgstr string) {
		if strings.HasPrefix(msgid, "[") {
			if sm := linkReferenceRe.FindStringSubmatch(msgid); sm != nil {
				if tm := linkReferenceRe.FindStringSubmatch(msgstr); tm != nil {
					pairs = append(pairs, referencePair{
						source: LinkReference{Label: sm[1], Target: sm[2], Title: sm[3]},
						target: LinkReference{Label: tm[1], Target: tm[2], Title: tm[3]},
					})
				}
			}
		}
		msgidUses := linkReferencedLinkRe.FindAllStringSubmatch(msgid, -1)
		if len(msgidUses) == 0 {
			return
		}
		msgstrUses := linkReferencedLinkRe.FindAllStringSubmatch(msgstr, -1)
		if len(msgstrUses) == 0 {
			return
		}
		queue = append(queue, queuedEntry{msgid, msgstr, msgidUses, msgstrUses})
	})

	resolved := NewCatalog()
	for _, entry := range queue {
		newMsgid := entry.msgid
		for _, use := range entry.msgidUses {
			for _, pair := range pairs {
				if pair.source.Label != use[2] {
					continue
				}
				newMsgid = expandReference(newMsgid, use[1], use[2], pair.source.Target)
				break
			}
		}
		newMsgstr := entry.msgstr
		for _, use := range entry.msgstrUses {
			for _, pair := range pairs {
				if pair.target.Label != use[2] {
					continue
				}
				newMsgstr = expandReference(newMsgstr, use[1], use[2], pair.target.Target)
				break
			}
		}
		resolved.Set(newMsgid, newMsgstr)
	}
	return resolved
}

// expandReference replaces the first occurrence of `[display][label]` with
// `[display](target)`; later duplicates are handled by their own usage
// matches.
func expandReference(text, display, label, target string) string {
	shorthand := "[" + display + "][" + label + "]"
	expanded := "[" + display + "](" + target + ")"
	return strings.Replace(text, shorthand, expanded, 1)
}
