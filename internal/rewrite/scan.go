package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/numbook/internal/envs"
)

// Scanner finds environment declarations of the form
//
//	{{key}}{label}[title]
//
// where {label} and [title] are optional, and rewrites each into a numbered
// header, recording labelled sites in the label registry. The pattern is
// built from the configured keys, so nothing outside the registry can match.
type Scanner struct {
	envs envs.Registry
	re   *regexp.Regexp

	keyIdx, labelIdx, titleIdx int
}

func NewScanner(reg envs.Registry) *Scanner {
	s := &Scanner{envs: reg}
	if len(reg) == 0 {
		// No environments configured: nothing can ever match.
		return s
	}

	keys := make([]string, 0, len(reg))
	for k := range reg {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Strings(keys)

	pattern := `\{\{(?P<key>` + strings.Join(keys, "|") + `)\}\}(\{(?P<label>.*?)\})?(\[(?P<title>.*?)\])?`
	s.re = regexp.MustCompile(pattern)
	s.keyIdx = s.re.SubexpIndex("key")
	s.labelIdx = s.re.SubexpIndex("label")
	s.titleIdx = s.re.SubexpIndex("title")
	return s
}

// Scan rewrites all declarations in one document and returns the new text.
// prefix is the section-number prefix ("" when prefix mode is off), docPath
// the document's logical path. Labelled declarations are inserted into labels
// first-wins; conflicts are reported through diag but still emit an anchor.
// Counters restart at zero for every call, so numbering is per document.
func (s *Scanner) Scan(text, prefix, docPath string, labels *Labels, diag *Diagnostics) string {
	if s.re == nil {
		return text
	}

	matches := s.re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	counters := make(map[string]int, len(s.envs))

	var out strings.Builder
	out.Grow(len(text))
	last := 0
	for _, m := range matches {
		out.WriteString(text[last:m[0]])
		last = m[1]

		key := text[m[2*s.keyIdx]:m[2*s.keyIdx+1]]
		kind := s.envs[key]
		counters[key]++
		numberedName := fmt.Sprintf("%s %s%d", kind.Name, prefix, counters[key])

		if m[2*s.labelIdx] >= 0 {
			label := text[m[2*s.labelIdx]:m[2*s.labelIdx+1]]
			info := Info{
				NumberedName: numberedName,
				Path:         docPath,
			}
			if m[2*s.titleIdx] >= 0 {
				info.Title = text[m[2*s.titleIdx]:m[2*s.titleIdx+1]]
				info.HasTitle = true
			}
			if !labels.Insert(label, info) {
				diag.DuplicateLabel(docPath, label, numberedName)
			}
			// The anchor is emitted even on conflict, so a document may carry
			// two identical anchors. Downstream renderers tolerate that.
			fmt.Fprintf(&out, "<a name=%q></a>\n", label)
		}

		if m[2*s.titleIdx] >= 0 {
			title := text[m[2*s.titleIdx]:m[2*s.titleIdx+1]]
			fmt.Fprintf(&out, "%s%s (%s).%s", kind.Emph, numberedName, title, kind.Emph)
		} else {
			fmt.Fprintf(&out, "%s%s.%s", kind.Emph, numberedName, kind.Emph)
		}
	}
	out.WriteString(text[last:])
	return out.String()
}
