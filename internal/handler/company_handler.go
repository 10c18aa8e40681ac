package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"placement/internal/entity"
	"placement/internal/repository"
	"placement/internal/session"
)

// CompanyHandler serves the company-side job-post endpoints.
type CompanyHandler struct {
	companies *repository.CompanyRepository
	jobs      *repository.JobRepository
	sessions  *session.Store
}

func NewCompanyHandler(
	companies *repository.CompanyRepository,
	jobs *repository.JobRepository,
	sessions *session.Store,
) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobs: jobs, sessions: sessions}
}

type createJobRequest struct {
	JobName          string    `json:"jobName"`
	Location         string    `json:"location"`
	MinSalary        float64   `json:"minSalary"`
	MaxSalary        float64   `json:"maxSalary"`
	JobTypeID        int       `json:"jobTypeId"`
	JobArrangementID int       `json:"jobArrangementId"`
	AboutRole        string    `json:"aboutRole"`
	Requirements     []string  `json:"requirements"`
	Qualifications   []string  `json:"qualifications"`
	Deadline         time.Time `json:"deadline"`
	IsPublished      bool      `json:"isPublished"`
}

// CreateJob records a new post for the signed-in company. Only approved
// companies may post.
func (h *CompanyHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	company, err := h.companies.GetByAccountID(r.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "No company profile for this account")
			return
		}
		log.Printf("company lookup failed for account %d: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if company.RegistrationStatus != entity.StatusApproved {
		writeError(w, http.StatusForbidden, "Company registration is not approved yet")
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.JobName == "" || req.JobTypeID == 0 || req.JobArrangementID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post := &entity.JobPost{
		CompanyID:        company.ID,
		JobName:          req.JobName,
		Location:         req.Location,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		JobTypeID:        req.JobTypeID,
		JobArrangementID: req.JobArrangementID,
		AboutRole:        req.AboutRole,
		Requirements:     req.Requirements,
		Qualifications:   req.Qualifications,
		Deadline:         req.Deadline,
		IsPublished:      req.IsPublished,
	}
	if err := h.jobs.Create(r.Context(), post); err != nil {
		log.Printf("create job post failed for company %d: %v", company.ID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create job post")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Job post created successfully",
		"jobPost": post,
	})
}
