package handler

import (
	"errors"
	"log"
	"net/http"

	"placement/internal/auth"
	"placement/internal/repository"
	"placement/internal/session"
)

// ProfileHandler serves the signed-in account's own profile and documents.
type ProfileHandler struct {
	students  *repository.StudentRepository
	companies *repository.CompanyRepository
	documents *repository.DocumentRepository
	sessions  *session.Store
}

func NewProfileHandler(
	students *repository.StudentRepository,
	companies *repository.CompanyRepository,
	documents *repository.DocumentRepository,
	sessions *session.Store,
) *ProfileHandler {
	return &ProfileHandler{
		students:  students,
		companies: companies,
		documents: documents,
		sessions:  sessions,
	}
}

// Profile returns the role profile linked to the session's account.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile interface{}
	var err error
	switch claims.Role {
	case auth.RoleStudent:
		profile, err = h.students.GetByAccountID(r.Context(), claims.AccountID)
	case auth.RoleCompany:
		profile, err = h.companies.GetByAccountID(r.Context(), claims.AccountID)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{"profile": nil})
		return
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("profile lookup failed for account %d: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// Documents lists the account's uploaded documents, newest first.
func (h *ProfileHandler) Documents(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	docs, err := h.documents.ListByAccount(r.Context(), claims.AccountID)
	if err != nil {
		log.Printf("list documents for account %d failed: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}
