package repository

import (
	"context"
	"database/sql"

	"placement/internal/entity"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO companies (account_id, name, address, phone, description, website, registration_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, register_day
	`, c.AccountID, c.Name, c.Address, c.Phone, c.Description, c.Website, c.RegistrationStatus,
	).Scan(&c.ID, &c.RegisterDay)
	return mapError(err)
}

func (r *CompanyRepository) GetByAccountID(ctx context.Context, accountID int) (*entity.Company, error) {
	var c entity.Company
	err := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, name, address, phone, description, website, register_day, registration_status
		FROM companies WHERE account_id = $1
	`, accountID).Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Address, &c.Phone,
		&c.Description, &c.Website, &c.RegisterDay, &c.RegistrationStatus,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// UpdateStatus overwrites the registration status and returns the updated
// row. Repeated transitions overwrite; there is no terminal-state guard.
func (r *CompanyRepository) UpdateStatus(ctx context.Context, id int, status string) (*entity.Company, error) {
	var c entity.Company
	err := r.db.QueryRowContext(ctx, `
		UPDATE companies SET registration_status = $2
		WHERE id = $1
		RETURNING id, account_id, name, address, phone, description, website, register_day, registration_status
	`, id, status).Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Address, &c.Phone,
		&c.Description, &c.Website, &c.RegisterDay, &c.RegistrationStatus,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// PendingCompany is a pending registration together with the evidence
// documents the company uploaded.
type PendingCompany struct {
	Company  entity.Company    `json:"company"`
	Email    string            `json:"email"`
	Evidence []entity.Document `json:"evidence"`
}

func (r *CompanyRepository) ListPending(ctx context.Context) ([]PendingCompany, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.account_id, c.name, c.address, c.phone, c.description,
			c.website, c.register_day, c.registration_status, a.email
		FROM companies c
		JOIN accounts a ON a.id = c.account_id
		WHERE c.registration_status = 'pending'
		ORDER BY c.register_day ASC
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []PendingCompany
	for rows.Next() {
		var p PendingCompany
		if err := rows.Scan(
			&p.Company.ID, &p.Company.AccountID, &p.Company.Name, &p.Company.Address,
			&p.Company.Phone, &p.Company.Description, &p.Company.Website,
			&p.Company.RegisterDay, &p.Company.RegistrationStatus, &p.Email,
		); err != nil {
			return nil, mapError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	for i := range out {
		docs, err := r.evidenceDocs(ctx, out[i].Company.AccountID)
		if err != nil {
			return nil, err
		}
		out[i].Evidence = docs
	}
	return out, nil
}

func (r *CompanyRepository) evidenceDocs(ctx context.Context, accountID int) ([]entity.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, doc_type_id, file_name, file_path, created_at
		FROM documents
		WHERE account_id = $1 AND doc_type_id = $2
		ORDER BY created_at DESC
	`, accountID, entity.DocTypeCompanyEvidence)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var docs []entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.AccountID, &d.DocTypeID, &d.FileName, &d.FilePath, &d.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		docs = append(docs, d)
	}
	return docs, mapError(rows.Err())
}
