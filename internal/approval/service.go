package approval

import (
	"context"
	"errors"
	"fmt"

	"placement/internal/entity"
	"placement/internal/repository"
)

var (
	// ErrCompanyNotFound is returned when the company id resolves nothing.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrInvalidDisposition rejects targets outside approved/rejected.
	ErrInvalidDisposition = errors.New("invalid disposition")
)

const (
	approvedMessage = "Your company registration has been approved! You can now post jobs and manage applications."
	rejectedMessage = "Your company registration has been rejected."
)

type CompanyStore interface {
	UpdateStatus(ctx context.Context, id int, status string) (*entity.Company, error)
}

type NotificationStore interface {
	Create(ctx context.Context, accountID int, message string) error
}

type Service struct {
	companies     CompanyStore
	notifications NotificationStore
}

func NewService(companies CompanyStore, notifications NotificationStore) *Service {
	return &Service{companies: companies, notifications: notifications}
}

// Transition sets the company's registration status and notifies its
// account. Transitions overwrite the current status unconditionally:
// re-running a disposition re-sends the notification rather than failing.
// Last writer wins on concurrent admin actions.
func (s *Service) Transition(ctx context.Context, companyID int, disposition, reason string) (*entity.Company, error) {
	if disposition != entity.StatusApproved && disposition != entity.StatusRejected {
		return nil, ErrInvalidDisposition
	}

	company, err := s.companies.UpdateStatus(ctx, companyID, disposition)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("update company status: %w", err)
	}

	message := approvedMessage
	if disposition == entity.StatusRejected {
		message = rejectedMessage
		if reason != "" {
			message += " Reason: " + reason
		}
	}
	if err := s.notifications.Create(ctx, company.AccountID, message); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return company, nil
}
