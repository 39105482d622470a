package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// unresolved is rendered in place of a reference whose label was never
// declared.
const unresolved = "**[??]**"

// refRe matches {{ref: label}} and {{tref: label}}; whitespace after the
// colon is optional.
var refRe = regexp.MustCompile(`\{\{(?P<reftype>ref:|tref:)\s*(?P<label>.*?)\}\}`)

var (
	refTypeIdx  = refRe.SubexpIndex("reftype")
	refLabelIdx = refRe.SubexpIndex("label")
)

// ResolveRefs rewrites all reference markers in one document into markdown
// links against the frozen label registry. ref: links use the target's
// numbered name; tref: links use its title, falling back to the numbered name
// when the declaration had none. Unknown labels render as a placeholder and
// are reported through diag.
func ResolveRefs(text, docPath string, labels View, diag *Diagnostics) string {
	matches := refRe.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))
	last := 0
	for _, m := range matches {
		out.WriteString(text[last:m[0]])
		last = m[1]

		refType := text[m[2*refTypeIdx]:m[2*refTypeIdx+1]]
		label := text[m[2*refLabelIdx]:m[2*refLabelIdx+1]]

		info, ok := labels.Get(label)
		if !ok {
			diag.UnknownRef(docPath, label)
			out.WriteString(unresolved)
			continue
		}

		linkText := info.NumberedName
		if refType == "tref:" && info.HasTitle {
			linkText = info.Title
		}
		fmt.Fprintf(&out, "[%s](%s#%s)", linkText, Rel(docPath, info.Path), label)
	}
	out.WriteString(text[last:])
	return out.String()
}
