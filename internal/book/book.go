package book

// Chapter is one document of a book.
type Chapter struct {
	// Title is the chapter title from the summary link text.
	Title string `json:"title,omitempty"`
	// Path is the logical source path, forward slashes. Empty for drafts.
	Path string `json:"path"`
	// Body is the markdown text; rewritten in place by rendering.
	Body string `json:"body"`
	// Draft marks a placeholder chapter with no source file. Drafts are
	// neither scanned nor reference-resolved.
	Draft bool `json:"draft,omitempty"`
	// Section is the dotted section number with a trailing dot, e.g. "1.2.".
	// Empty for unnumbered chapters.
	Section string `json:"section,omitempty"`
}

// Book is an ordered sequence of chapters.
type Book struct {
	Chapters []*Chapter `json:"chapters"`
}
