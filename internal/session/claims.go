package session

import (
	"placement/internal/auth"
	"placement/internal/entity"
)

// Claims is the session token's claim set: who the actor is and which role
// gates their routes. Role stays RoleUnset until registration completes.
type Claims struct {
	AccountID     int
	Email         string
	Username      string
	Role          auth.Role
	LogoURL       string
	BackgroundURL string
}

// Enrich merges a freshly read account record into the claims. Fields
// already populated on the token win; in particular a populated role is
// never downgraded back to unset.
func (c Claims) Enrich(acc *entity.Account) Claims {
	if acc == nil {
		return c
	}
	if c.AccountID == 0 {
		c.AccountID = acc.ID
	}
	if c.Email == "" {
		c.Email = acc.Email
	}
	if c.Username == "" {
		c.Username = acc.Username
	}
	if c.Role == auth.RoleUnset {
		c.Role = auth.ParseRole(acc.RoleName)
	}
	if c.LogoURL == "" && acc.LogoURL != nil {
		c.LogoURL = *acc.LogoURL
	}
	if c.BackgroundURL == "" && acc.BackgroundURL != nil {
		c.BackgroundURL = *acc.BackgroundURL
	}
	return c
}

// FromIdentity builds the claim set minted at credential sign-in.
func FromIdentity(id auth.Identity) Claims {
	return Claims{
		AccountID:     id.ID,
		Email:         id.Email,
		Username:      id.Username,
		Role:          id.Role,
		LogoURL:       id.LogoURL,
		BackgroundURL: id.BackgroundURL,
	}
}
