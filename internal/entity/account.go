package entity

import "time"

type Account struct {
	ID                int        `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      *string    `json:"-"`
	Username          string     `json:"username"`
	RoleID            *int       `json:"role_id,omitempty"`
	RoleName          string     `json:"role,omitempty"`
	EmailVerifiedAt   *time.Time `json:"email_verified_at,omitempty"`
	Provider          *string    `json:"provider,omitempty"`
	ProviderAccountID *string    `json:"provider_account_id,omitempty"`
	LogoURL           *string    `json:"logo_url,omitempty"`
	BackgroundURL     *string    `json:"background_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type AccountRole struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
