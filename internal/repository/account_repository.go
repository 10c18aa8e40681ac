package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"placement/internal/entity"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `a.id, a.email, a.password, a.username, a.role_id, r.name,
		a.email_verified_at, a.provider, a.provider_account_id,
		a.logo_url, a.background_url, a.created_at, a.updated_at`

func (r *AccountRepository) scan(row *sql.Row) (*entity.Account, error) {
	var acc entity.Account
	var roleName sql.NullString
	err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.PasswordHash,
		&acc.Username,
		&acc.RoleID,
		&roleName,
		&acc.EmailVerifiedAt,
		&acc.Provider,
		&acc.ProviderAccountID,
		&acc.LogoURL,
		&acc.BackgroundURL,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	acc.RoleName = roleName.String
	return &acc, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		LEFT JOIN account_roles r ON r.id = a.role_id
		WHERE a.email = $1
	`, email)
	return r.scan(row)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int) (*entity.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		LEFT JOIN account_roles r ON r.id = a.role_id
		WHERE a.id = $1
	`, id)
	return r.scan(row)
}

// Create inserts the account and fills in its generated id. A unique
// violation on email surfaces as ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, acc *entity.Account) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts
			(email, password, username, role_id, email_verified_at,
			 provider, provider_account_id, logo_url, background_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		acc.Email,
		acc.PasswordHash,
		acc.Username,
		acc.RoleID,
		acc.EmailVerifiedAt,
		acc.Provider,
		acc.ProviderAccountID,
		acc.LogoURL,
		acc.BackgroundURL,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	return mapError(err)
}

func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UserListFilter narrows the admin user listing.
type UserListFilter struct {
	Search string
	Role   string // "student", "company", "admin" or empty/"all"
	Status string // "active", "inactive" or empty/"all"
	Page   int
	Limit  int
}

// UserRow is the admin listing projection: account plus whichever profile
// the role links to.
type UserRow struct {
	Account entity.Account
	Student *entity.Student
	Company *entity.Company
}

// List returns a page of accounts plus the total count for the filter.
func (r *AccountRepository) List(ctx context.Context, f UserListFilter) ([]UserRow, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	var where []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(a.email ILIKE %s OR a.username ILIKE %s OR s.name ILIKE %s OR c.name ILIKE %s)",
			p, p, p, p))
	}
	if f.Role != "" && f.Role != "all" {
		where = append(where, fmt.Sprintf("LOWER(r.name) = LOWER(%s)", arg(f.Role)))
	}
	switch f.Status {
	case "active":
		where = append(where, "a.email_verified_at IS NOT NULL")
	case "inactive":
		where = append(where, "a.email_verified_at IS NULL")
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	base := `
		FROM accounts a
		LEFT JOIN account_roles r ON r.id = a.role_id
		LEFT JOIN students s ON s.account_id = a.id
		LEFT JOIN companies c ON c.account_id = a.id
		` + clause

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `
		SELECT a.id, a.email, a.username, r.name, a.email_verified_at,
			a.created_at, a.updated_at,
			s.id, s.student_id, s.name, s.faculty, s.year, s.phone,
			c.id, c.name, c.address, c.phone, c.description, c.website, c.registration_status
		` + base + `
		ORDER BY a.created_at DESC
		LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg((f.Page-1)*f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var out []UserRow
	for rows.Next() {
		var u UserRow
		var roleName sql.NullString
		var verifiedAt sql.NullTime
		var sID sql.NullInt64
		var sStudentID, sName, sFaculty, sYear, sPhone sql.NullString
		var cID sql.NullInt64
		var cName, cAddress, cPhone, cDescription, cWebsite, cStatus sql.NullString

		if err := rows.Scan(
			&u.Account.ID, &u.Account.Email, &u.Account.Username, &roleName, &verifiedAt,
			&u.Account.CreatedAt, &u.Account.UpdatedAt,
			&sID, &sStudentID, &sName, &sFaculty, &sYear, &sPhone,
			&cID, &cName, &cAddress, &cPhone, &cDescription, &cWebsite, &cStatus,
		); err != nil {
			return nil, 0, mapError(err)
		}

		u.Account.RoleName = roleName.String
		if verifiedAt.Valid {
			t := verifiedAt.Time
			u.Account.EmailVerifiedAt = &t
		}
		if sID.Valid {
			u.Student = &entity.Student{
				ID:        int(sID.Int64),
				AccountID: u.Account.ID,
				StudentID: sStudentID.String,
				Name:      sName.String,
				Faculty:   sFaculty.String,
				Year:      sYear.String,
				Phone:     sPhone.String,
			}
		}
		if cID.Valid {
			u.Company = &entity.Company{
				ID:                 int(cID.Int64),
				AccountID:          u.Account.ID,
				Name:               cName.String,
				Address:            cAddress.String,
				Phone:              cPhone.String,
				Description:        cDescription.String,
				RegistrationStatus: cStatus.String,
			}
			if cWebsite.Valid {
				w := cWebsite.String
				u.Company.Website = &w
			}
		}
		out = append(out, u)
	}
	return out, total, mapError(rows.Err())
}
