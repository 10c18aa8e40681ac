package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"placement/internal/auth"
	"placement/internal/entity"
	"placement/internal/session"
)

// Authenticator is the slice of the auth service the sign-in handlers use.
type Authenticator interface {
	VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error)
	FederatedSignIn(ctx context.Context, fid auth.FederatedIdentity) (*entity.Account, error)
}

type AuthHandler struct {
	auth     Authenticator
	sessions *session.Store
}

func NewAuthHandler(a Authenticator, sessions *session.Store) *AuthHandler {
	return &AuthHandler{auth: a, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and mints the session. The error body is the
// same for unknown emails and wrong passwords.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identity, err := h.auth.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.sessions.Save(w, r, session.FromIdentity(identity)); err != nil {
		log.Printf("session save failed for account %d: %v", identity.ID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"redirectTo": identity.Role.Dashboard(),
	})
}

type federatedRequest struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	AvatarURL         string `json:"avatarUrl"`
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"providerAccountId"`
}

// Federated resolves a verified provider assertion to an account, creating
// a roleless one when none exists, and mints the session either way.
func (h *AuthHandler) Federated(w http.ResponseWriter, r *http.Request) {
	var req federatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Provider == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	acc, err := h.auth.FederatedSignIn(r.Context(), auth.FederatedIdentity{
		Email:             req.Email,
		Name:              req.Name,
		AvatarURL:         req.AvatarURL,
		Provider:          req.Provider,
		ProviderAccountID: req.ProviderAccountID,
	})
	if err != nil {
		log.Printf("federated sign-in failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	claims := session.Claims{}.Enrich(acc)
	if err := h.sessions.Save(w, r, claims); err != nil {
		log.Printf("session save failed for account %d: %v", acc.ID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"redirectTo": claims.Role.Dashboard(),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
