package auth

import "strings"

// Role is the closed set of actor roles. External role data (form values,
// stored role names, federated profiles) is normalized exactly once through
// ParseRole; everywhere else roles compare as typed constants.
type Role string

const (
	RoleUnset   Role = ""
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return RoleStudent
	case "company":
		return RoleCompany
	case "admin":
		return RoleAdmin
	default:
		return RoleUnset
	}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCompany || r == RoleAdmin
}

// Dashboard returns the role's landing page. Roleless actors land on the
// complete-registration page.
func (r Role) Dashboard() string {
	if !r.Valid() {
		return "/register/complete"
	}
	return "/" + string(r) + "/dashboard"
}

func (r Role) String() string {
	return string(r)
}
