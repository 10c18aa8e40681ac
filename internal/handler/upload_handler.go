package handler

import (
	"errors"
	"log"
	"net/http"

	"placement/internal/entity"
	"placement/internal/repository"
	"placement/internal/session"
	"placement/internal/storage"
)

type UploadHandler struct {
	objects   storage.Store
	documents *repository.DocumentRepository
	students  *repository.StudentRepository
	sessions  *session.Store
}

func NewUploadHandler(
	objects storage.Store,
	documents *repository.DocumentRepository,
	students *repository.StudentRepository,
	sessions *session.Store,
) *UploadHandler {
	return &UploadHandler{
		objects:   objects,
		documents: documents,
		students:  students,
		sessions:  sessions,
	}
}

// Transcript stores a transcript for the signed-in student and records its
// path on both the documents table and the student profile. This is the
// required-attachment path: a failed upload fails the request.
func (h *UploadHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	file, header, err := r.FormFile("transcript")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing transcript file")
		return
	}
	defer file.Close()

	key := storage.ObjectKey(claims.AccountID, entity.DocTypeTranscript, header.Filename)
	path, err := h.objects.Save(r.Context(), key, file)
	if err != nil {
		log.Printf("transcript upload failed for account %d: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Failed to store transcript")
		return
	}

	doc := &entity.Document{
		AccountID: claims.AccountID,
		DocTypeID: entity.DocTypeTranscript,
		FileName:  header.Filename,
		FilePath:  path,
	}
	if err := h.documents.Create(r.Context(), doc); err != nil {
		log.Printf("transcript record failed for account %d: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Failed to store transcript")
		return
	}
	if err := h.students.SetTranscript(r.Context(), claims.AccountID, path); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "No student profile for this account")
			return
		}
		log.Printf("transcript link failed for account %d: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Failed to store transcript")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Transcript uploaded successfully",
		"filePath": path,
	})
}
