package book

import (
	"log/slog"

	"github.com/dgallion1/numbook/internal/envs"
	"github.com/dgallion1/numbook/internal/rewrite"
)

// Options configures one render.
type Options struct {
	// Envs is the finalized environment registry. Nil means the built-in
	// defaults.
	Envs envs.Registry
	// Prefix prepends each chapter's section number to environment counters.
	Prefix bool
}

// Renderer runs the two passes over one book. The scan pass must complete
// for the whole book before the resolve pass starts: a reference may target
// a label declared in a later chapter.
type Renderer struct {
	b       *Book
	opts    Options
	scanner *rewrite.Scanner
	labels  *rewrite.Labels
	diag    *rewrite.Diagnostics
}

func NewRenderer(b *Book, opts Options, log *slog.Logger) *Renderer {
	reg := opts.Envs
	if reg == nil {
		reg = envs.Defaults()
	}
	return &Renderer{
		b:       b,
		opts:    opts,
		scanner: rewrite.NewScanner(reg),
		labels:  rewrite.NewLabels(),
		diag:    rewrite.NewDiagnostics(log),
	}
}

// ScanAll numbers the environments of every non-draft chapter, rewriting
// bodies in place and filling the label registry.
func (r *Renderer) ScanAll() {
	for _, ch := range r.b.Chapters {
		if ch.Draft {
			continue
		}
		prefix := ""
		if r.opts.Prefix {
			prefix = ch.Section
		}
		ch.Body = r.scanner.Scan(ch.Body, prefix, ch.Path, r.labels, r.diag)
	}
}

// ResolveAll rewrites references against the now-frozen label registry and
// audits the emitted anchors. Call after ScanAll. Returns all warnings
// accumulated across both passes; they are advisory, rendering always
// completes.
func (r *Renderer) ResolveAll() []rewrite.Warning {
	view := r.labels.Freeze()
	for _, ch := range r.b.Chapters {
		if ch.Draft {
			continue
		}
		ch.Body = rewrite.ResolveRefs(ch.Body, ch.Path, view, r.diag)
		rewrite.AuditAnchors(ch.Path, ch.Body, r.diag)
	}
	return r.diag.Warnings()
}

// Render runs both passes.
func Render(b *Book, opts Options, log *slog.Logger) []rewrite.Warning {
	r := NewRenderer(b, opts, log)
	r.ScanAll()
	return r.ResolveAll()
}
