package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"placement/internal/auth"
	"placement/internal/entity"
)

func TestClaimsEnrich(t *testing.T) {
	logo := "https://cdn.example.com/logo.png"
	roleID := 1
	acc := &entity.Account{
		ID:       42,
		Email:    "s@x.com",
		Username: "Sam",
		RoleID:   &roleID,
		RoleName: "Student",
		LogoURL:  &logo,
	}

	t.Run("fills missing fields", func(t *testing.T) {
		merged := Claims{AccountID: 42}.Enrich(acc)
		assert.Equal(t, auth.RoleStudent, merged.Role)
		assert.Equal(t, "s@x.com", merged.Email)
		assert.Equal(t, "Sam", merged.Username)
		assert.Equal(t, logo, merged.LogoURL)
	})

	t.Run("populated role is never downgraded", func(t *testing.T) {
		current := Claims{AccountID: 42, Role: auth.RoleAdmin, Username: "Boss"}
		merged := current.Enrich(&entity.Account{ID: 42, RoleName: ""})
		assert.Equal(t, auth.RoleAdmin, merged.Role)
		assert.Equal(t, "Boss", merged.Username)
	})

	t.Run("token fields win over the record", func(t *testing.T) {
		current := Claims{AccountID: 42, Role: auth.RoleCompany, Username: "Acme"}
		merged := current.Enrich(acc)
		assert.Equal(t, auth.RoleCompany, merged.Role)
		assert.Equal(t, "Acme", merged.Username)
	})

	t.Run("nil record is a no-op", func(t *testing.T) {
		current := Claims{AccountID: 42}
		assert.Equal(t, current, current.Enrich(nil))
	})

	t.Run("roleless record leaves role unset", func(t *testing.T) {
		merged := Claims{AccountID: 7}.Enrich(&entity.Account{ID: 7, Email: "f@x.com"})
		assert.Equal(t, auth.RoleUnset, merged.Role)
	})
}
