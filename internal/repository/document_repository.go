package repository

import (
	"context"
	"database/sql"

	"placement/internal/entity"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO documents (account_id, doc_type_id, file_name, file_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, d.AccountID, d.DocTypeID, d.FileName, d.FilePath).Scan(&d.ID, &d.CreatedAt)
	return mapError(err)
}

func (r *DocumentRepository) ListByAccount(ctx context.Context, accountID int) ([]entity.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, doc_type_id, file_name, file_path, created_at
		FROM documents
		WHERE account_id = $1
		ORDER BY created_at DESC
	`, accountID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.AccountID, &d.DocTypeID, &d.FileName, &d.FilePath, &d.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		out = append(out, d)
	}
	return out, mapError(rows.Err())
}
