package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/numbook/internal/book"
	"github.com/dgallion1/numbook/internal/publish"
	"github.com/dgallion1/numbook/internal/rewrite"
)

// Worker renders a single book job: scan pass, resolve pass, then an
// optional push of the rendered chapters to the pathstore.
type Worker struct {
	publisher *publish.Client // nil when publishing is disabled
	log       *slog.Logger
	stats     *rewrite.RenderStats
}

func NewWorker(publisher *publish.Client, log *slog.Logger, stats *rewrite.RenderStats) *Worker {
	return &Worker{
		publisher: publisher,
		log:       log,
		stats:     stats,
	}
}

// Process runs the full render pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "book_id", job.BookID)
	start := time.Now()

	b, opts := job.Payload()
	r := book.NewRenderer(b, opts, log)

	job.SetStatus(StatusScanning, "scanning")
	r.ScanAll()

	job.SetStatus(StatusResolving, "resolving")
	warnings := r.ResolveAll()
	job.SetResult(warnings)
	log.Info("rendered book", "chapters", len(b.Chapters), "warnings", len(warnings))

	if w.publisher != nil {
		job.SetStatus(StatusPublishing, "publishing")
		w.publishChapters(ctx, job, b, log)
	}

	job.SetStatus(StatusCompleted, "done")
	w.stats.Record(time.Since(start), len(warnings))
}

// publishChapters pushes each rendered chapter with retries. Publish
// failures are recorded on the job but never fail the render.
func (w *Worker) publishChapters(ctx context.Context, job *Job, b *book.Book, log *slog.Logger) {
	for _, ch := range b.Chapters {
		if ch.Draft {
			continue
		}
		var lastErr error
		for attempt := 0; attempt < MaxRetries; attempt++ {
			lastErr = w.publisher.PutChapter(ctx, job.BookID, ch.Path, ch.Body)
			if lastErr == nil {
				break
			}
			log.Warn("publish failed", "chapter", ch.Path, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(Backoff(attempt)):
			case <-ctx.Done():
				job.AddError(fmt.Sprintf("publish %s: %s", ch.Path, ctx.Err()))
				return
			}
		}
		if lastErr != nil {
			job.AddError(fmt.Sprintf("publish %s: %s", ch.Path, lastErr))
			continue
		}
		job.IncrPublished()
	}
}
