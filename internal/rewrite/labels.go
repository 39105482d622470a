package rewrite

// Info holds everything a reference needs to link to a numbered environment.
type Info struct {
	// NumberedName is the fully rendered "Kind N" or "Kind 1.2.N" string,
	// without emphasis markup.
	NumberedName string
	// Path is the logical path of the document declaring the label.
	Path string
	// Title is the optional declaration title; HasTitle distinguishes an
	// absent title from an empty one.
	Title    string
	HasTitle bool
}

// Labels is the label registry built during the scan pass. Inserts are
// first-wins: a label, once recorded, is never overwritten.
type Labels struct {
	m map[string]Info
}

func NewLabels() *Labels {
	return &Labels{m: make(map[string]Info)}
}

// Insert records a label unless it already exists. Returns false on conflict,
// leaving the original entry intact.
func (l *Labels) Insert(label string, info Info) bool {
	if _, ok := l.m[label]; ok {
		return false
	}
	l.m[label] = info
	return true
}

func (l *Labels) Get(label string) (Info, bool) {
	info, ok := l.m[label]
	return info, ok
}

func (l *Labels) Len() int {
	return len(l.m)
}

// View is the read-only form handed to the resolve pass. The scan pass must
// be finished for every document before Freeze is called.
type View struct {
	m map[string]Info
}

func (l *Labels) Freeze() View {
	return View{m: l.m}
}

func (v View) Get(label string) (Info, bool) {
	info, ok := v.m[label]
	return info, ok
}
