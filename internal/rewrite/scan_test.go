package rewrite

import (
	"testing"

	"github.com/dgallion1/numbook/internal/envs"
)

const secnum = "1.2."

const groupsPath = "crypto/groups.md"

func newScan(t *testing.T) (*Scanner, *Labels, *Diagnostics) {
	t.Helper()
	return NewScanner(envs.Defaults()), NewLabels(), NewDiagnostics(nil)
}

func TestScan_NoLabelNoTitle(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("{{prop}}", secnum, groupsPath, labels, diag)
	want := "**Proposition 1.2.1.**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if labels.Len() != 0 {
		t.Errorf("expected no labels recorded, got %d", labels.Len())
	}
}

func TestScan_NoPrefix(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("{{prop}}", "", groupsPath, labels, diag)
	want := "**Proposition 1.**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScan_OverriddenEnvironment(t *testing.T) {
	reg := envs.Defaults()
	name, emph := "Proposal", "*"
	reg.Apply(map[string]envs.Override{
		"prop": {Name: &name, Emph: &emph},
	})
	sc := NewScanner(reg)
	labels := NewLabels()
	got := sc.Scan("{{prop}}", secnum, groupsPath, labels, NewDiagnostics(nil))
	want := "*Proposal 1.2.1.*"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if labels.Len() != 0 {
		t.Errorf("expected no labels recorded, got %d", labels.Len())
	}
}

func TestScan_WithLabelNoTitle(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("{{prop}}{prop:lagrange}", secnum, groupsPath, labels, diag)
	want := "<a name=\"prop:lagrange\"></a>\n**Proposition 1.2.1.**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	info, ok := labels.Get("prop:lagrange")
	if !ok {
		t.Fatal("expected label to be recorded")
	}
	if info.NumberedName != "Proposition 1.2.1" {
		t.Errorf("numbered name: got %q, want %q", info.NumberedName, "Proposition 1.2.1")
	}
	if info.Path != groupsPath {
		t.Errorf("path: got %q, want %q", info.Path, groupsPath)
	}
	if info.HasTitle {
		t.Errorf("expected no title, got %q", info.Title)
	}
}

func TestScan_NoLabelWithTitle(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("{{prop}}[Lagrange Theorem]", secnum, groupsPath, labels, diag)
	want := "**Proposition 1.2.1 (Lagrange Theorem).**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if labels.Len() != 0 {
		t.Error("a title without a label must not touch the registry")
	}
}

func TestScan_WithLabelWithTitle(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("{{prop}}{prop:lagrange}[Lagrange Theorem]", secnum, groupsPath, labels, diag)
	want := "<a name=\"prop:lagrange\"></a>\n**Proposition 1.2.1 (Lagrange Theorem).**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	info, _ := labels.Get("prop:lagrange")
	if !info.HasTitle || info.Title != "Lagrange Theorem" {
		t.Errorf("expected recorded title, got %+v", info)
	}
}

func TestScan_DuplicateLabel(t *testing.T) {
	sc, labels, diag := newScan(t)
	input := "{{prop}}{prop:lagrange}[Lagrange Theorem] {{thm}}{prop:lagrange}[Another Lagrange Theorem]"
	got := sc.Scan(input, secnum, groupsPath, labels, diag)
	want := "<a name=\"prop:lagrange\"></a>\n**Proposition 1.2.1 (Lagrange Theorem).** " +
		"<a name=\"prop:lagrange\"></a>\n**Theorem 1.2.1 (Another Lagrange Theorem).**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// First declaration wins; the second still renders and anchors.
	if labels.Len() != 1 {
		t.Fatalf("expected 1 surviving label, got %d", labels.Len())
	}
	info, _ := labels.Get("prop:lagrange")
	if info.NumberedName != "Proposition 1.2.1" {
		t.Errorf("surviving entry should be the first: got %q", info.NumberedName)
	}

	warnings := diag.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Code != CodeDuplicateLabel || warnings[0].Label != "prop:lagrange" {
		t.Errorf("unexpected warning: %+v", warnings[0])
	}
}

func TestScan_CountersPerKindAndPerDocument(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("{{thm}} {{prop}} {{thm}}", "", "a.md", labels, diag)
	want := "**Theorem 1.** **Proposition 1.** **Theorem 2.**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// A second document starts its counters over.
	got = sc.Scan("{{thm}}", "", "b.md", labels, diag)
	if got != "**Theorem 1.**" {
		t.Errorf("counters must reset per document, got %q", got)
	}
}

func TestScan_RewrittenTextDoesNotMatchAgain(t *testing.T) {
	sc, labels, diag := newScan(t)
	once := sc.Scan("{{prop}}{prop:lagrange}[Lagrange Theorem]", "", groupsPath, labels, diag)
	twice := sc.Scan(once, "", groupsPath, NewLabels(), diag)
	if twice != once {
		t.Errorf("second scan must be a no-op: %q != %q", twice, once)
	}
}

func TestScan_UnknownKeyPassesThrough(t *testing.T) {
	sc, labels, diag := newScan(t)
	input := "{{cor}}{cor:one} and {prop} and {{prop}"
	got := sc.Scan(input, "", groupsPath, labels, diag)
	if got != input {
		t.Errorf("malformed or unconfigured markers must pass through, got %q", got)
	}
	if labels.Len() != 0 || len(diag.Warnings()) != 0 {
		t.Error("pass-through must not record labels or warnings")
	}
}

func TestScan_EmptyRegistry(t *testing.T) {
	sc := NewScanner(envs.Registry{})
	got := sc.Scan("{{prop}} text", "", groupsPath, NewLabels(), NewDiagnostics(nil))
	if got != "{{prop}} text" {
		t.Errorf("empty registry must match nothing, got %q", got)
	}
}

func TestScan_SurroundingTextPreserved(t *testing.T) {
	sc, labels, diag := newScan(t)
	got := sc.Scan("before {{def}} after", "", groupsPath, labels, diag)
	want := "before **Definition 1.** after"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
