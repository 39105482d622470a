package book

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseSummary reads an mdBook-style SUMMARY.md and returns the chapters it
// lists, in order. Nested list items produce dotted section numbers
// ("1.", "1.1.", ...); list items without a link destination are drafts.
// Content outside lists (part headings, separators) is skipped.
func ParseSummary(src []byte) ([]*Chapter, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var chapters []*Chapter
	// Top-level lists continue one numbering sequence even when separated by
	// part headings.
	counter := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*ast.List)
		if !ok {
			continue
		}
		counter = collectListItems(list, src, nil, counter, &chapters)
	}
	return chapters, nil
}

// collectListItems walks one list level, appending a chapter per item and
// recursing into nested lists. parent is the enclosing section number path;
// start is the last sibling index already used at this level. Returns the
// updated index.
func collectListItems(list *ast.List, src []byte, parent []int, start int, chapters *[]*Chapter) int {
	idx := start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		idx++
		number := append(append([]int{}, parent...), idx)

		ch := chapterFromItem(item, src)
		ch.Section = sectionString(number)
		*chapters = append(*chapters, ch)

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				collectListItems(sub, src, number, 0, chapters)
			}
		}
	}
	return idx
}

// chapterFromItem extracts title and destination from a list item's first
// link. An item with no link is a draft placeholder.
func chapterFromItem(item ast.Node, src []byte) *Chapter {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.List); ok {
			continue
		}
		for inline := c.FirstChild(); inline != nil; inline = inline.NextSibling() {
			if link, ok := inline.(*ast.Link); ok {
				ch := &Chapter{
					Title: string(link.Text(src)),
					Path:  strings.TrimSpace(string(link.Destination)),
				}
				// mdBook marks drafts as links with an empty destination.
				ch.Draft = ch.Path == ""
				return ch
			}
		}
		if title := strings.TrimSpace(string(c.Text(src))); title != "" {
			return &Chapter{Title: title, Draft: true}
		}
	}
	return &Chapter{Draft: true}
}

func sectionString(number []int) string {
	var b strings.Builder
	for _, n := range number {
		fmt.Fprintf(&b, "%d.", n)
	}
	return b.String()
}
