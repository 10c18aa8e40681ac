package session

import (
	"net/http"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"placement/internal/auth"
)

const cookieName = "placement-session"

// Store wraps the cookie-backed session runtime. Token signing, expiry and
// transport belong to gorilla/sessions; this wrapper only moves Claims in
// and out of session values.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore() *Store {
	authKey := []byte(os.Getenv("SESSION_AUTH_KEY"))
	if len(authKey) == 0 {
		authKey = securecookie.GenerateRandomKey(32)
	}
	encKey := []byte(os.Getenv("SESSION_ENC_KEY"))

	var cs *sessions.CookieStore
	if len(encKey) > 0 {
		cs = sessions.NewCookieStore(authKey, encKey)
	} else {
		cs = sessions.NewCookieStore(authKey)
	}
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Get returns the claims on the request, or nil when there is no
// authenticated session.
func (s *Store) Get(r *http.Request) *Claims {
	sess, _ := s.cookies.Get(r, cookieName)

	accountID, ok := sess.Values["account_id"].(int)
	if !ok || accountID == 0 {
		return nil
	}

	c := &Claims{AccountID: accountID}
	if v, ok := sess.Values["email"].(string); ok {
		c.Email = v
	}
	if v, ok := sess.Values["username"].(string); ok {
		c.Username = v
	}
	if v, ok := sess.Values["role"].(string); ok {
		c.Role = auth.ParseRole(v)
	}
	if v, ok := sess.Values["logo_url"].(string); ok {
		c.LogoURL = v
	}
	if v, ok := sess.Values["background_url"].(string); ok {
		c.BackgroundURL = v
	}
	return c
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, c Claims) error {
	sess, _ := s.cookies.Get(r, cookieName)
	sess.Values["account_id"] = c.AccountID
	sess.Values["email"] = c.Email
	sess.Values["username"] = c.Username
	sess.Values["role"] = string(c.Role)
	sess.Values["logo_url"] = c.LogoURL
	sess.Values["background_url"] = c.BackgroundURL
	return sess.Save(r, w)
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.cookies.Get(r, cookieName)
	sess.Options.MaxAge = -1
	sess.Save(r, w)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
