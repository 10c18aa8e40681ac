package handler

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"placement/internal/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

type PageHandler struct {
	sessions *session.Store
}

func NewPageHandler(sessions *session.Store) *PageHandler {
	return &PageHandler{sessions: sessions}
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s failed: %v", name, err)
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home.html", map[string]interface{}{
		"Title": "Placement",
	})
}

// Login renders the login page, optionally shaped for one role
// (/login/student, /login/company, /login/admin).
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	h.render(w, "login.html", map[string]interface{}{
		"Title":       "Sign in",
		"Role":        role,
		"CallbackURL": r.URL.Query().Get("callbackUrl"),
	})
}

func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", map[string]interface{}{
		"Title": "Create an account",
	})
}

func (h *PageHandler) RegisterComplete(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	data := map[string]interface{}{
		"Title": "Complete your registration",
	}
	if claims != nil {
		data["Email"] = claims.Email
		data["Username"] = claims.Username
	}
	h.render(w, "register_complete.html", data)
}

func (h *PageHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	h.render(w, "jobs.html", map[string]interface{}{
		"Title": "Open positions",
	})
}

// Dashboard renders the role dashboard shell; the route guard has already
// made sure the role matches the path.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := h.sessions.Get(r)
	data := map[string]interface{}{
		"Title": "Dashboard",
	}
	if claims != nil {
		data["Username"] = claims.Username
		data["Role"] = claims.Role.String()
		data["LogoURL"] = claims.LogoURL
	}
	h.render(w, "dashboard.html", data)
}
