package repository

import (
	"context"
	"database/sql"

	"placement/internal/entity"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, s *entity.Student) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO students (account_id, student_id, name, faculty, year, phone, transcript)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, s.AccountID, s.StudentID, s.Name, s.Faculty, s.Year, s.Phone, s.Transcript,
	).Scan(&s.ID, &s.CreatedAt)
	return mapError(err)
}

func (r *StudentRepository) GetByAccountID(ctx context.Context, accountID int) (*entity.Student, error) {
	var s entity.Student
	err := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, student_id, name, faculty, year, phone, transcript, created_at
		FROM students WHERE account_id = $1
	`, accountID).Scan(
		&s.ID, &s.AccountID, &s.StudentID, &s.Name, &s.Faculty,
		&s.Year, &s.Phone, &s.Transcript, &s.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// SetTranscript records the stored transcript path after a later upload.
func (r *StudentRepository) SetTranscript(ctx context.Context, accountID int, path string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE students SET transcript = $2 WHERE account_id = $1
	`, accountID, path)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
