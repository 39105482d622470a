package rewrite

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// AuditAnchors parses the anchors in a rendered document and reports any
// anchor name emitted more than once. Duplicate labels legitimately produce
// duplicate anchors (the conflict site still gets one), so this reports and
// never rewrites.
func AuditAnchors(docPath, rendered string, diag *Diagnostics) {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		// Rendered chapters are markdown with inline anchors; a text that the
		// lenient HTML parser rejects carries nothing to audit.
		return
	}

	counts := make(map[string]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val != "" {
					counts[attr.Val]++
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	names := make([]string, 0, len(counts))
	for name, count := range counts {
		if count > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		diag.DuplicateAnchor(docPath, name, counts[name])
	}
}
