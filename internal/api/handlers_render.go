package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/numbook/internal/book"
	"github.com/dgallion1/numbook/internal/envs"
	"github.com/dgallion1/numbook/internal/pipeline"
	"github.com/dgallion1/numbook/internal/rewrite"
	"github.com/go-chi/chi/v5"
)

// renderRequest is a book payload: chapters in reading order plus the
// finalized rendering configuration.
type renderRequest struct {
	BookID       string                   `json:"book_id"`
	Prefix       bool                     `json:"prefix"`
	Environments map[string]envs.Override `json:"environments"`
	Chapters     []*book.Chapter          `json:"chapters"`
}

type renderResponse struct {
	BookID   string            `json:"book_id"`
	Chapters []*book.Chapter   `json:"chapters"`
	Warnings []rewrite.Warning `json:"warnings"`
}

// decodeRenderRequest reads and validates a render payload.
func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (*renderRequest, *book.Book, book.Options, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, nil, book.Options{}, false
	}
	if len(req.Chapters) == 0 {
		jsonError(w, "at least one chapter is required", http.StatusBadRequest)
		return nil, nil, book.Options{}, false
	}
	seen := make(map[string]bool, len(req.Chapters))
	for i, ch := range req.Chapters {
		if ch.Draft {
			continue
		}
		if ch.Path == "" {
			jsonError(w, fmt.Sprintf("chapter %d: path is required for non-draft chapters", i), http.StatusBadRequest)
			return nil, nil, book.Options{}, false
		}
		if seen[ch.Path] {
			jsonError(w, fmt.Sprintf("chapter %d: duplicate path %s", i, ch.Path), http.StatusBadRequest)
			return nil, nil, book.Options{}, false
		}
		seen[ch.Path] = true
	}

	if req.BookID == "" {
		raw, _ := json.Marshal(req.Chapters)
		req.BookID = pipeline.ContentHashHex(raw)[:16]
	}

	reg := envs.Defaults()
	reg.Apply(req.Environments)

	b := &book.Book{Chapters: req.Chapters}
	opts := book.Options{Envs: reg, Prefix: req.Prefix}
	return &req, b, opts, true
}

// handleRender renders a book synchronously.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, b, opts, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	warnings := book.Render(b, opts, s.log.With("book_id", req.BookID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(renderResponse{
		BookID:   req.BookID,
		Chapters: b.Chapters,
		Warnings: warnings,
	})
}

// handleRenderAsync enqueues a render job.
func (s *Server) handleRenderAsync(w http.ResponseWriter, r *http.Request) {
	req, b, opts, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(req.BookID, b, opts)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"book_id":  job.BookID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/render/%s/status", job.ID),
	})
}

// handleRenderStatus reports job progress; completed jobs include the
// rendered chapters and warnings.
func (s *Server) handleRenderStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	resp := map[string]any{
		"job_id":   snap.ID,
		"book_id":  snap.BookID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	}
	if b, warnings, ok := job.Result(); ok {
		resp["chapters"] = b.Chapters
		resp["warnings"] = warnings
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
