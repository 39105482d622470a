package book

import (
	"fmt"
	"io/fs"
)

// SummaryFile is the index a book directory must carry.
const SummaryFile = "SUMMARY.md"

// LoadDir reads SUMMARY.md from the root of fsys and then every chapter file
// it references. A missing chapter file fails the load before any rewriting
// starts; drafts have no file and are skipped.
func LoadDir(fsys fs.FS) (*Book, error) {
	src, err := fs.ReadFile(fsys, SummaryFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SummaryFile, err)
	}

	chapters, err := ParseSummary(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", SummaryFile, err)
	}

	for _, ch := range chapters {
		if ch.Draft {
			continue
		}
		body, err := fs.ReadFile(fsys, ch.Path)
		if err != nil {
			return nil, fmt.Errorf("read chapter %s: %w", ch.Path, err)
		}
		ch.Body = string(body)
	}
	return &Book{Chapters: chapters}, nil
}
