package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/numbook/internal/book"
	"github.com/dgallion1/numbook/internal/rewrite"
)

// JobStatus represents the state of a render job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusScanning   JobStatus = "scanning"
	StatusResolving  JobStatus = "resolving"
	StatusPublishing JobStatus = "publishing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single book render.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	BookID string `json:"book_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	bookIn   *book.Book
	opts     book.Options
	warnings []rewrite.Warning
	errors   []string
	done     bool
}

// Progress tracks render progress.
type Progress struct {
	Chapters  int      `json:"chapters"`
	Published int      `json:"published"`
	Warnings  int      `json:"warnings"`
	Errors    []string `json:"errors"`
}

// NewJob builds a queued job around a book payload.
func NewJob(bookID string, b *book.Book, opts book.Options) *Job {
	now := time.Now()
	return &Job{
		ID:        NewID(),
		BookID:    bookID,
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  Progress{Chapters: len(b.Chapters)},
		CreatedAt: now,
		UpdatedAt: now,
		bookIn:    b,
		opts:      opts,
	}
}

// Payload returns the book and options to render.
func (j *Job) Payload() (*book.Book, book.Options) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.bookIn, j.opts
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records a non-fatal error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrPublished counts one chapter pushed to the pathstore.
func (j *Job) IncrPublished() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Published++
	j.UpdatedAt = time.Now()
}

// SetResult records the render outcome. The rewritten chapters live in the
// book the job was created with.
func (j *Job) SetResult(warnings []rewrite.Warning) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.warnings = warnings
	j.Progress.Warnings = len(warnings)
	j.done = true
	j.UpdatedAt = time.Now()
}

// Result returns the rendered book and warnings; ok is false until the
// render finished.
func (j *Job) Result() (b *book.Book, warnings []rewrite.Warning, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.done {
		return nil, nil, false
	}
	return j.bookIn, j.warnings, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	BookID   string    `json:"book_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:     j.ID,
		BookID: j.BookID,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			Chapters:  j.Progress.Chapters,
			Published: j.Progress.Published,
			Warnings:  j.Progress.Warnings,
			Errors:    errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
