package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"placement/internal/metrics"
	"placement/internal/registration"
)

// Registrar is the registration workflow contract.
type Registrar interface {
	Register(ctx context.Context, req registration.Request) (registration.Result, error)
}

type RegistrationHandler struct {
	svc Registrar
}

func NewRegistrationHandler(svc Registrar) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

const maxUploadSize = 10 << 20 // 10 MiB

// Register accepts the multipart registration form: a role selector plus
// the role's field set and an optional transcript or evidence file.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	req := registration.Request{
		Role:        r.FormValue("role"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		StudentID:   r.FormValue("studentId"),
		Name:        r.FormValue("name"),
		Faculty:     r.FormValue("faculty"),
		Year:        r.FormValue("year"),
		Phone:       r.FormValue("phone"),
		CompanyName: r.FormValue("companyName"),
		Address:     r.FormValue("address"),
		Description: r.FormValue("description"),
		Website:     r.FormValue("website"),
	}

	if att, closer := formAttachment(r, "transcript"); att != nil {
		defer closer()
		req.Transcript = att
	}
	if att, closer := formAttachment(r, "evidence"); att != nil {
		defer closer()
		req.Evidence = att
	}

	result, err := h.svc.Register(r.Context(), req)
	if err != nil {
		var verr *registration.ValidationError
		switch {
		case errors.Is(err, registration.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "Invalid role")
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Invalid data",
				"details": verr.Fields,
			})
		case errors.Is(err, registration.ErrDuplicateAccount):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			log.Printf("registration failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	metrics.Registrations.WithLabelValues(req.Role).Inc()
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":    "Account created successfully",
		"redirectTo": result.RedirectTo,
	})
}

func formAttachment(r *http.Request, field string) (*registration.Attachment, func() error) {
	file, header, err := r.FormFile(field)
	if err != nil || header.Size == 0 {
		if err == nil {
			file.Close()
		} else if !errors.Is(err, http.ErrMissingFile) {
			log.Printf("read form file %q: %v", field, err)
		}
		return nil, nil
	}
	return &registration.Attachment{
		Filename: header.Filename,
		Content:  file,
		Size:     header.Size,
	}, file.Close
}
