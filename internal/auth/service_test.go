package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"placement/internal/entity"
	"placement/internal/repository"
)

type fakeAccountStore struct {
	byEmail map[string]*entity.Account
	created []*entity.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byEmail: map[string]*entity.Account{}}
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	if acc, ok := f.byEmail[email]; ok {
		return acc, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int) (*entity.Account, error) {
	for _, acc := range f.byEmail {
		if acc.ID == id {
			return acc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountStore) Create(_ context.Context, acc *entity.Account) error {
	if _, ok := f.byEmail[acc.Email]; ok {
		return repository.ErrDuplicate
	}
	acc.ID = len(f.byEmail) + 1
	f.byEmail[acc.Email] = acc
	f.created = append(f.created, acc)
	return nil
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret-password")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}

func TestVerifyCredentials(t *testing.T) {
	store := newFakeAccountStore()
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)
	logo := "https://cdn.example.com/logo.png"
	store.byEmail["a@x.com"] = &entity.Account{
		ID:           1,
		Email:        "a@x.com",
		Username:     "Acme",
		PasswordHash: &hash,
		RoleName:     "Company",
		LogoURL:      &logo,
	}
	svc := NewService(store)

	t.Run("success", func(t *testing.T) {
		id, err := svc.VerifyCredentials(context.Background(), "a@x.com", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, 1, id.ID)
		assert.Equal(t, RoleCompany, id.Role)
		assert.Equal(t, "Acme", id.Username)
		assert.Equal(t, logo, id.LogoURL)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPass := svc.VerifyCredentials(context.Background(), "a@x.com", "wrong")
		_, unknown := svc.VerifyCredentials(context.Background(), "nobody@x.com", "whatever")
		assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, ErrInvalidCredentials)
		assert.Equal(t, wrongPass, unknown)
	})

	t.Run("federated-only account has no usable credentials", func(t *testing.T) {
		store.byEmail["fed@x.com"] = &entity.Account{ID: 2, Email: "fed@x.com"}
		_, err := svc.VerifyCredentials(context.Background(), "fed@x.com", "anything")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestFederatedSignIn(t *testing.T) {
	t.Run("creates roleless verified account when absent", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := NewService(store)

		acc, err := svc.FederatedSignIn(context.Background(), FederatedIdentity{
			Email:             "new@x.com",
			Name:              "New User",
			AvatarURL:         "https://lh3.example.com/a.png",
			Provider:          "google",
			ProviderAccountID: "g-123",
		})
		require.NoError(t, err)
		require.Len(t, store.created, 1)
		assert.Equal(t, "new@x.com", acc.Email)
		assert.Nil(t, acc.RoleID)
		assert.Nil(t, acc.PasswordHash)
		assert.NotNil(t, acc.EmailVerifiedAt)
		require.NotNil(t, acc.Provider)
		assert.Equal(t, "google", *acc.Provider)
	})

	t.Run("existing account is left untouched", func(t *testing.T) {
		store := newFakeAccountStore()
		roleID := 2
		existing := &entity.Account{ID: 9, Email: "old@x.com", Username: "Old", RoleID: &roleID, RoleName: "Company"}
		store.byEmail["old@x.com"] = existing
		svc := NewService(store)

		acc, err := svc.FederatedSignIn(context.Background(), FederatedIdentity{
			Email:    "old@x.com",
			Name:     "Different Name",
			Provider: "google",
		})
		require.NoError(t, err)
		assert.Same(t, existing, acc)
		assert.Empty(t, store.created)
		assert.Equal(t, "Old", acc.Username)
	})
}
