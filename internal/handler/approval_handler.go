package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"placement/internal/approval"
	"placement/internal/entity"
	"placement/internal/metrics"
	"placement/internal/repository"
)

// Approver is the company approval workflow contract.
type Approver interface {
	Transition(ctx context.Context, companyID int, disposition, reason string) (*entity.Company, error)
}

// PendingLister serves the review queue for the admin UI.
type PendingLister interface {
	ListPending(ctx context.Context) ([]repository.PendingCompany, error)
}

type ApprovalHandler struct {
	svc     Approver
	pending PendingLister
}

func NewApprovalHandler(svc Approver, pending PendingLister) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, pending: pending}
}

type approveRequest struct {
	CompanyID int    `json:"companyId"`
	Action    string `json:"action"`
	Reason    string `json:"reason"`
}

// Approve transitions a company's registration status. Route access is
// already admin-gated; this only validates the request itself.
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.CompanyID == 0 || req.Action == "" {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	company, err := h.svc.Transition(r.Context(), req.CompanyID, req.Action, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrInvalidDisposition):
			writeError(w, http.StatusBadRequest, "Invalid request data")
		case errors.Is(err, approval.ErrCompanyNotFound):
			writeError(w, http.StatusNotFound, "Company not found")
		default:
			log.Printf("approval transition failed for company %d: %v", req.CompanyID, err)
			writeError(w, http.StatusInternalServerError, "Failed to update company status")
		}
		return
	}

	metrics.ApprovalTransitions.WithLabelValues(req.Action).Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Company %s successfully", req.Action),
		"company": company,
	})
}

func (h *ApprovalHandler) Pending(w http.ResponseWriter, r *http.Request) {
	companies, err := h.pending.ListPending(r.Context())
	if err != nil {
		log.Printf("list pending companies failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch pending companies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"companies": companies,
	})
}
