package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"placement/internal/auth"
	"placement/internal/session"
)

func claims(role auth.Role) *session.Claims {
	return &session.Claims{AccountID: 1, Email: "u@x.com", Role: role}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		claims   *session.Claims
		allow    bool
		redirect string
	}{
		// unauthenticated
		{"student page without session", "/student/dashboard", nil, false, "/login/student?callbackUrl=/student/dashboard"},
		{"company page without session", "/company/jobs/new", nil, false, "/login/company?callbackUrl=/company/jobs/new"},
		{"admin page without session", "/admin/dashboard", nil, false, "/login/admin?callbackUrl=/admin/dashboard"},
		{"unknown protected segment", "/payroll/reports", nil, false, "/"},
		{"home is public", "/", nil, true, ""},
		{"jobs page is public", "/jobs", nil, true, ""},
		{"jobs detail is public", "/jobs/42", nil, true, ""},
		{"jobs api is public", "/api/jobs", nil, true, ""},
		{"login pages are public", "/login/student", nil, true, ""},
		{"api routes carry their own auth", "/api/admin/users", nil, true, ""},

		// transitional roleless session
		{"roleless session on protected page", "/student/dashboard", claims(auth.RoleUnset), false, "/register/complete"},
		{"roleless session on home", "/", claims(auth.RoleUnset), false, "/register/complete"},
		{"roleless session on completion page", "/register/complete", claims(auth.RoleUnset), true, ""},
		{"roleless session on api", "/api/register", claims(auth.RoleUnset), true, ""},

		// cross-role access
		{"student on admin page", "/admin/dashboard", claims(auth.RoleStudent), false, "/student/dashboard"},
		{"student on company page", "/company/jobs", claims(auth.RoleStudent), false, "/student/dashboard"},
		{"company on student page", "/student/profile", claims(auth.RoleCompany), false, "/company/dashboard"},
		{"company on admin page", "/admin/users", claims(auth.RoleCompany), false, "/company/dashboard"},
		{"admin on student page", "/student/profile", claims(auth.RoleAdmin), false, "/admin/dashboard"},
		{"admin on company page", "/company/jobs", claims(auth.RoleAdmin), false, "/admin/dashboard"},
		{"admin on admin page", "/admin/manage-post", claims(auth.RoleAdmin), true, ""},

		// authenticated actors on public pages
		{"student on home", "/", claims(auth.RoleStudent), false, "/student/dashboard"},
		{"company on login", "/login", claims(auth.RoleCompany), false, "/company/dashboard"},
		{"admin on register", "/register", claims(auth.RoleAdmin), false, "/admin/dashboard"},
		{"student keeps access to jobs page", "/jobs", claims(auth.RoleStudent), true, ""},
		{"student on jobs detail page", "/jobs/42", claims(auth.RoleStudent), false, "/student/dashboard"},
		{"student on jobs api", "/api/jobs", claims(auth.RoleStudent), true, ""},

		// own territory
		{"student on own dashboard", "/student/dashboard", claims(auth.RoleStudent), true, ""},
		{"company on own pages", "/company/jobs/new", claims(auth.RoleCompany), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.path, tt.claims)
			assert.Equal(t, tt.allow, d.Allow, "allow")
			assert.Equal(t, tt.redirect, d.RedirectTo, "redirect")
		})
	}
}
