package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"placement/internal/repository"
)

const (
	statsCacheKey = "admin:dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

type AdminHandler struct {
	accounts *repository.AccountRepository
	jobs     *repository.JobRepository
	stats    *repository.StatsRepository
	cache    *redis.Client // nil disables caching
}

func NewAdminHandler(
	accounts *repository.AccountRepository,
	jobs *repository.JobRepository,
	stats *repository.StatsRepository,
	cache *redis.Client,
) *AdminHandler {
	return &AdminHandler{accounts: accounts, jobs: jobs, stats: stats, cache: cache}
}

// Users serves the paginated, filterable account listing.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, total, err := h.accounts.List(r.Context(), repository.UserListFilter{
		Search: q.Get("search"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("list users failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	type userView struct {
		ID       int         `json:"id"`
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Role     string      `json:"role"`
		IsActive bool        `json:"isActive"`
		Profile  interface{} `json:"profile"`
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		v := userView{
			ID:       u.Account.ID,
			Name:     u.Account.Username,
			Email:    u.Account.Email,
			Role:     u.Account.RoleName,
			IsActive: u.Account.EmailVerifiedAt != nil,
		}
		if u.Student != nil {
			v.Profile = u.Student
		} else if u.Company != nil {
			v.Profile = u.Company
		}
		views = append(views, v)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": views,
		"total": total,
	})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.accounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("delete user %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// JobPosts serves the admin job-post listing.
func (h *AdminHandler) JobPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	posts, total, err := h.jobs.ListAdmin(r.Context(), repository.AdminListFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Reported: q.Get("reported") == "true",
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		log.Printf("list job posts failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch job posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobPosts": posts,
		"total":    total,
	})
}

func (h *AdminHandler) DeleteJobPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job post id")
		return
	}
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job post not found")
			return
		}
		log.Printf("delete job post %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete job post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job post deleted successfully"})
}

type publishRequest struct {
	IsPublished bool `json:"isPublished"`
}

func (h *AdminHandler) SetJobPublished(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job post id")
		return
	}
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.jobs.SetPublished(r.Context(), id, req.IsPublished); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job post not found")
			return
		}
		log.Printf("publish job post %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update job post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job post updated successfully"})
}

// Dashboard serves the aggregated admin statistics, cached briefly in
// redis when a client is configured.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("stats cache read failed: %v", err)
		}
	}

	stats, err := h.stats.Dashboard(ctx)
	if err != nil {
		log.Printf("dashboard stats failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard statistics")
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := h.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("stats cache write failed: %v", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, stats)
}
