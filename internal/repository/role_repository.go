package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindOrCreate resolves a role name to its id, creating the role when it
// does not exist yet. Lookup is case-insensitive; stored names keep their
// seeded capitalization.
func (r *RoleRepository) FindOrCreate(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM account_roles WHERE LOWER(name) = LOWER($1)
	`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, mapError(err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO account_roles (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, capitalize(name)).Scan(&id)
	return id, mapError(err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
