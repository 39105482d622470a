package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/numbook/internal/book"
	"github.com/dgallion1/numbook/internal/rewrite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJobStore_PutGetCleanup(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)

	job := NewJob("book1", &book.Book{}, book.Options{})
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Fatal("expected to get the stored job back")
	}
	if store.Get("missing") != nil {
		t.Error("expected nil for unknown id")
	}

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()
	if store.Get(job.ID) != nil {
		t.Error("expected expired job to be evicted")
	}
}

func TestJob_ResultLifecycle(t *testing.T) {
	b := &book.Book{Chapters: []*book.Chapter{{Path: "a.md"}}}
	job := NewJob("book1", b, book.Options{})

	if _, _, ok := job.Result(); ok {
		t.Fatal("result must not be available before SetResult")
	}

	job.SetResult([]rewrite.Warning{{Code: rewrite.CodeUnknownRef, Label: "x"}})
	got, warnings, ok := job.Result()
	if !ok {
		t.Fatal("expected result after SetResult")
	}
	if got != b {
		t.Error("expected the job's book back")
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(warnings))
	}

	snap := job.Snapshot()
	if snap.Progress.Warnings != 1 {
		t.Errorf("snapshot warnings: got %d, want 1", snap.Progress.Warnings)
	}
	if snap.Progress.Errors == nil {
		t.Error("snapshot errors must not be nil")
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("expected 26-char ids, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Error("ids must be unique")
	}
	for _, r := range a {
		if !strings.ContainsRune(crockford, r) {
			t.Errorf("unexpected character %q in id %s", r, a)
		}
	}
}

func TestWorker_ProcessRendersBook(t *testing.T) {
	b := &book.Book{Chapters: []*book.Chapter{
		{Path: "a.md", Body: "{{thm}}{thm:x}"},
		{Path: "b.md", Body: "{{ref: thm:x}} {{ref: thm:gone}}"},
	}}
	job := NewJob("book1", b, book.Options{})

	w := NewWorker(nil, discardLogger(), rewrite.NewRenderStats(time.Hour))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", snap.Status, snap.Phase)
	}

	rendered, warnings, ok := job.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if want := "[Theorem 1](a.md#thm:x) **[??]**"; rendered.Chapters[1].Body != want {
		t.Errorf("got %q, want %q", rendered.Chapters[1].Body, want)
	}
	if len(warnings) != 1 || warnings[0].Code != rewrite.CodeUnknownRef {
		t.Errorf("expected one unknown-reference warning, got %+v", warnings)
	}
}

func TestBackoff_Bounded(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := Backoff(attempt)
		if d < time.Second || d > 45*time.Second {
			t.Errorf("attempt %d: backoff %s out of range", attempt, d)
		}
	}
}
