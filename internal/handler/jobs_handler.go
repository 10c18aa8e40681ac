package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"placement/internal/repository"
)

type JobsHandler struct {
	jobs *repository.JobRepository
}

func NewJobsHandler(jobs *repository.JobRepository) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// List serves the public job listing: published posts from approved
// companies only.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	jobs, total, err := h.jobs.ListPublished(r.Context(), repository.PublicListFilter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("list jobs failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"total": total,
	})
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	job, err := h.jobs.GetView(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		log.Printf("get job %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}
