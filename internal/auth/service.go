package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"placement/internal/entity"
	"placement/internal/repository"
)

// BcryptCost is the fixed work factor for credential hashes.
const BcryptCost = 12

// AccountStore is the slice of the identity store the auth service needs.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByID(ctx context.Context, id int) (*entity.Account, error)
	Create(ctx context.Context, acc *entity.Account) error
}

// Identity is the minimal projection returned by a successful credential
// check.
type Identity struct {
	ID            int
	Email         string
	Username      string
	Role          Role
	LogoURL       string
	BackgroundURL string
}

// FederatedIdentity is a verified assertion from an external provider.
type FederatedIdentity struct {
	Email             string
	Name              string
	AvatarURL         string
	Provider          string
	ProviderAccountID string
}

type Service struct {
	accounts AccountStore
}

func NewService(accounts AccountStore) *Service {
	return &Service{accounts: accounts}
}

// VerifyCredentials checks an email/password pair. Unknown email, a
// federated-only account without a hash and a wrong password all return
// ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (Identity, error) {
	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("lookup account: %w", err)
	}
	if acc.PasswordHash == nil {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*acc.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return identityOf(acc), nil
}

// FederatedSignIn resolves a federated identity to an account, creating one
// without a role when none exists. Existing accounts are left untouched.
func (s *Service) FederatedSignIn(ctx context.Context, fid FederatedIdentity) (*entity.Account, error) {
	acc, err := s.accounts.GetByEmail(ctx, fid.Email)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	now := time.Now()
	acc = &entity.Account{
		Email:           fid.Email,
		Username:        fid.Name,
		EmailVerifiedAt: &now,
	}
	if fid.Provider != "" {
		acc.Provider = &fid.Provider
	}
	if fid.ProviderAccountID != "" {
		acc.ProviderAccountID = &fid.ProviderAccountID
	}
	if fid.AvatarURL != "" {
		acc.LogoURL = &fid.AvatarURL
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		// Lost a race with a concurrent first sign-in; the row is there now.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.accounts.GetByEmail(ctx, fid.Email)
		}
		return nil, fmt.Errorf("create federated account: %w", err)
	}
	return acc, nil
}

// LookupByID fetches the account for lazy session backfill.
func (s *Service) LookupByID(ctx context.Context, id int) (*entity.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// HashPassword hashes a plaintext password at the fixed cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func identityOf(acc *entity.Account) Identity {
	id := Identity{
		ID:       acc.ID,
		Email:    acc.Email,
		Username: acc.Username,
		Role:     ParseRole(acc.RoleName),
	}
	if acc.LogoURL != nil {
		id.LogoURL = *acc.LogoURL
	}
	if acc.BackgroundURL != nil {
		id.BackgroundURL = *acc.BackgroundURL
	}
	return id
}
