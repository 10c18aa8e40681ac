package middleware

import (
	"strings"

	"placement/internal/auth"
	"placement/internal/session"
)

// Decision is the guard's verdict for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Public paths: exact match, or prefix match on everything but the root.
var publicPaths = []string{"/", "/login", "/register", "/jobs", "/api/jobs"}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
		if p != "/" && strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

func topSegment(path string) string {
	seg := strings.TrimPrefix(path, "/")
	if i := strings.Index(seg, "/"); i >= 0 {
		seg = seg[:i]
	}
	return seg
}

// Decide is the route guard: a pure decision over (path, session claims).
// Rules evaluate as one ordered table; API routes carry their own auth and
// are only subject to the public-set rule. With the closed role set, the
// cross-role rule already covers every non-admin hitting /admin/*.
func Decide(path string, claims *session.Claims) Decision {
	public := isPublic(path)
	api := isAPI(path)

	// No session: public and API paths pass, everything else goes to the
	// matching login page with the original path as callback target.
	if claims == nil {
		if public || api {
			return allow()
		}
		switch seg := topSegment(path); seg {
		case "student", "company", "admin":
			return redirect("/login/" + seg + "?callbackUrl=" + path)
		default:
			return redirect("/")
		}
	}

	// Transitional federated-signup state: a session without a role may
	// only reach the complete-registration page.
	if claims.Role == auth.RoleUnset {
		if api || path == "/register/complete" || strings.HasPrefix(path, "/register/complete/") {
			return allow()
		}
		return redirect("/register/complete")
	}

	// Cross-role access lands on the actor's own dashboard.
	var foreign []string
	switch claims.Role {
	case auth.RoleStudent:
		foreign = []string{"/company", "/admin"}
	case auth.RoleCompany:
		foreign = []string{"/student", "/admin"}
	case auth.RoleAdmin:
		foreign = []string{"/student", "/company"}
	}
	for _, prefix := range foreign {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return redirect(claims.Role.Dashboard())
		}
	}

	// Authenticated actors stay off the public pages, except the job
	// listing which stays open to everyone.
	if public && !api {
		if path == "/jobs" {
			return allow()
		}
		return redirect(claims.Role.Dashboard())
	}

	return allow()
}
