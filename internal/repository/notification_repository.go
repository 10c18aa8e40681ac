package repository

import (
	"context"
	"database/sql"

	"placement/internal/entity"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, accountID int, message string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (account_id, message) VALUES ($1, $2)
	`, accountID, message)
	return mapError(err)
}

func (r *NotificationRepository) ListByAccount(ctx context.Context, accountID int) ([]entity.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, message, created_at
		FROM notifications
		WHERE account_id = $1
		ORDER BY created_at DESC
	`, accountID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Message, &n.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		out = append(out, n)
	}
	return out, mapError(rows.Err())
}
