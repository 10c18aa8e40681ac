package handler

import (
	"log"
	"net/http"

	"placement/internal/repository"
	"placement/internal/session"
)

type NotificationHandler struct {
	notifications *repository.NotificationRepository
	sessions      *session.Store
}

func NewNotificationHandler(notifications *repository.NotificationRepository, sessions *session.Store) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, sessions: sessions}
}

// List returns the signed-in account's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications, err := h.notifications.ListByAccount(r.Context(), claims.AccountID)
	if err != nil {
		log.Printf("list notifications for account %d failed: %v", claims.AccountID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}
