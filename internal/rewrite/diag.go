package rewrite

import (
	"fmt"
	"log/slog"
)

// Code classifies a rendering warning.
type Code string

const (
	CodeDuplicateLabel  Code = "duplicate_label"
	CodeUnknownRef      Code = "unknown_reference"
	CodeDuplicateAnchor Code = "duplicate_anchor"
)

// Warning is one recoverable rendering problem. None of these stop a render.
type Warning struct {
	Code   Code   `json:"code"`
	Path   string `json:"path"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// Diagnostics accumulates warnings for one render and mirrors them to the
// logger. It is owned by a single render and is not safe for concurrent use.
type Diagnostics struct {
	log      *slog.Logger
	warnings []Warning
}

func NewDiagnostics(log *slog.Logger) *Diagnostics {
	return &Diagnostics{log: log}
}

func (d *Diagnostics) add(w Warning) {
	d.warnings = append(d.warnings, w)
	if d.log != nil {
		d.log.Warn(w.Detail, "code", string(w.Code), "path", w.Path, "label", w.Label)
	}
}

// DuplicateLabel records a label reuse; numberedName is the rendering at the
// duplicate site, not the surviving registry entry.
func (d *Diagnostics) DuplicateLabel(path, label, numberedName string) {
	d.add(Warning{
		Code:   CodeDuplicateLabel,
		Path:   path,
		Label:  label,
		Detail: numberedName + ": label `" + label + "' already used",
	})
}

func (d *Diagnostics) UnknownRef(path, label string) {
	d.add(Warning{
		Code:   CodeUnknownRef,
		Path:   path,
		Label:  label,
		Detail: "unknown reference: " + label,
	})
}

func (d *Diagnostics) DuplicateAnchor(path, name string, count int) {
	d.add(Warning{
		Code:   CodeDuplicateAnchor,
		Path:   path,
		Label:  name,
		Detail: fmt.Sprintf("anchor `%s' emitted %d times", name, count),
	})
}

// Warnings returns everything recorded so far, never nil.
func (d *Diagnostics) Warnings() []Warning {
	if d.warnings == nil {
		return []Warning{}
	}
	return d.warnings
}
