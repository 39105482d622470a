package rewrite

import (
	"path"
	"strings"
)

// Rel computes the relative path from the directory containing from to the
// file to. Both are logical book paths with forward slashes; they are cleaned
// first, so doubled separators and redundant "." segments are tolerated.
// Identical paths yield the empty string (a same-document link).
func Rel(from, to string) string {
	from = path.Clean(from)
	to = path.Clean(to)
	if from == to {
		return ""
	}

	base := path.Dir(from)
	if base == "." {
		return to
	}

	baseSegs := strings.Split(base, "/")
	toSegs := strings.Split(to, "/")

	common := 0
	for common < len(baseSegs) && common < len(toSegs) && baseSegs[common] == toSegs[common] {
		common++
	}

	var out []string
	for i := common; i < len(baseSegs); i++ {
		out = append(out, "..")
	}
	out = append(out, toSegs[common:]...)
	return strings.Join(out, "/")
}
