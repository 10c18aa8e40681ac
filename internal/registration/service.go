package registration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"placement/internal/auth"
	"placement/internal/entity"
	"placement/internal/repository"
	"placement/internal/storage"
)

var (
	// ErrInvalidRole rejects role selectors outside student/company.
	ErrInvalidRole = errors.New("invalid role")
	// ErrDuplicateAccount is returned when the email is already taken.
	ErrDuplicateAccount = errors.New("account already exists")
)

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Create(ctx context.Context, acc *entity.Account) error
}

type RoleStore interface {
	FindOrCreate(ctx context.Context, name string) (int, error)
}

type StudentStore interface {
	Create(ctx context.Context, s *entity.Student) error
}

type CompanyStore interface {
	Create(ctx context.Context, c *entity.Company) error
}

type DocumentStore interface {
	Create(ctx context.Context, d *entity.Document) error
}

// Attachment is an optional uploaded file forwarded to object storage.
type Attachment struct {
	Filename string
	Content  io.Reader
	Size     int64
}

// Request is the role selector plus the union of both role payloads; only
// the selected role's fields are validated.
type Request struct {
	Role string

	Email    string
	Password string

	// student fields
	StudentID string
	Name      string
	Faculty   string
	Year      string
	Phone     string

	// company fields
	CompanyName string
	Address     string
	Description string
	Website     string

	Transcript *Attachment
	Evidence   *Attachment
}

type Result struct {
	AccountID  int
	RedirectTo string
}

type Service struct {
	accounts  AccountStore
	roles     RoleStore
	students  StudentStore
	companies CompanyStore
	documents DocumentStore
	objects   storage.Store
}

func NewService(
	accounts AccountStore,
	roles RoleStore,
	students StudentStore,
	companies CompanyStore,
	documents DocumentStore,
	objects storage.Store,
) *Service {
	return &Service{
		accounts:  accounts,
		roles:     roles,
		students:  students,
		companies: companies,
		documents: documents,
		objects:   objects,
	}
}

// Register validates the payload, creates the account and its role profile,
// and forwards attachments to object storage. No persistence happens before
// validation passes; attachment failures are logged and registration
// proceeds without the file reference.
func (s *Service) Register(ctx context.Context, req Request) (Result, error) {
	role := auth.ParseRole(req.Role)
	if role != auth.RoleStudent && role != auth.RoleCompany {
		return Result{}, ErrInvalidRole
	}

	if err := s.validate(role, req); err != nil {
		return Result{}, err
	}

	// Fast-path duplicate check; the unique index on email is the
	// authoritative guarantee and races fall through to the insert below.
	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return Result{}, ErrDuplicateAccount
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Result{}, fmt.Errorf("check existing account: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	roleID, err := s.roles.FindOrCreate(ctx, role.String())
	if err != nil {
		return Result{}, fmt.Errorf("resolve role: %w", err)
	}

	username := req.Name
	if role == auth.RoleCompany {
		username = req.CompanyName
	}

	acc := &entity.Account{
		Email:        req.Email,
		PasswordHash: &hash,
		Username:     username,
		RoleID:       &roleID,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return Result{}, ErrDuplicateAccount
		}
		return Result{}, fmt.Errorf("create account: %w", err)
	}

	switch role {
	case auth.RoleStudent:
		transcriptPath := s.storeAttachment(ctx, acc.ID, entity.DocTypeTranscript, req.Transcript)
		student := &entity.Student{
			AccountID:  acc.ID,
			StudentID:  req.StudentID,
			Name:       req.Name,
			Faculty:    req.Faculty,
			Year:       req.Year,
			Phone:      req.Phone,
			Transcript: transcriptPath,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return Result{}, fmt.Errorf("create student profile: %w", err)
		}
	case auth.RoleCompany:
		// Evidence is stored before the profile row so the pending
		// registration can be reviewed with its document attached. A
		// failed upload does not abort the registration.
		s.storeAttachment(ctx, acc.ID, entity.DocTypeCompanyEvidence, req.Evidence)
		company := &entity.Company{
			AccountID:          acc.ID,
			Name:               req.CompanyName,
			Address:            req.Address,
			Phone:              req.Phone,
			Description:        req.Description,
			RegistrationStatus: entity.StatusPending,
		}
		if req.Website != "" {
			company.Website = &req.Website
		}
		if err := s.companies.Create(ctx, company); err != nil {
			return Result{}, fmt.Errorf("create company profile: %w", err)
		}
	}

	return Result{
		AccountID:  acc.ID,
		RedirectTo: role.Dashboard(),
	}, nil
}

func (s *Service) validate(role auth.Role, req Request) error {
	if role == auth.RoleStudent {
		return studentPayload{
			Email:     req.Email,
			Password:  req.Password,
			StudentID: req.StudentID,
			Name:      req.Name,
			Faculty:   req.Faculty,
			Year:      req.Year,
			Phone:     req.Phone,
		}.Validate()
	}
	return companyPayload{
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
		Website:     req.Website,
	}.Validate()
}

// storeAttachment uploads a file and records its document row, returning
// the stored path. Failures are logged and leave the registration intact.
func (s *Service) storeAttachment(ctx context.Context, accountID, docTypeID int, att *Attachment) *string {
	if att == nil || att.Size == 0 {
		return nil
	}

	key := storage.ObjectKey(accountID, docTypeID, att.Filename)
	path, err := s.objects.Save(ctx, key, att.Content)
	if err != nil {
		log.Printf("attachment upload failed for account %d: %v", accountID, err)
		return nil
	}

	doc := &entity.Document{
		AccountID: accountID,
		DocTypeID: docTypeID,
		FileName:  att.Filename,
		FilePath:  path,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		log.Printf("document record failed for account %d: %v", accountID, err)
	}
	return &path
}
