package registration

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"placement/internal/entity"
	"placement/internal/repository"
)

type fakeAccounts struct {
	existing map[string]*entity.Account
	created  []*entity.Account
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	if acc, ok := f.existing[email]; ok {
		return acc, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) Create(_ context.Context, acc *entity.Account) error {
	if _, ok := f.existing[acc.Email]; ok {
		return repository.ErrDuplicate
	}
	acc.ID = len(f.existing) + 1
	if f.existing == nil {
		f.existing = map[string]*entity.Account{}
	}
	f.existing[acc.Email] = acc
	f.created = append(f.created, acc)
	return nil
}

type fakeRoles struct {
	names []string
}

func (f *fakeRoles) FindOrCreate(_ context.Context, name string) (int, error) {
	f.names = append(f.names, name)
	switch name {
	case "student":
		return 1, nil
	case "company":
		return 2, nil
	}
	return 99, nil
}

type fakeStudents struct {
	created []*entity.Student
}

func (f *fakeStudents) Create(_ context.Context, s *entity.Student) error {
	s.ID = len(f.created) + 1
	f.created = append(f.created, s)
	return nil
}

type fakeCompanies struct {
	created []*entity.Company
}

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company) error {
	c.ID = len(f.created) + 1
	f.created = append(f.created, c)
	return nil
}

type fakeDocuments struct {
	created []*entity.Document
}

func (f *fakeDocuments) Create(_ context.Context, d *entity.Document) error {
	d.ID = len(f.created) + 1
	f.created = append(f.created, d)
	return nil
}

type fakeObjects struct {
	saved []string
	err   error
}

func (f *fakeObjects) Save(_ context.Context, key string, _ io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, key)
	return key, nil
}

type fixture struct {
	svc       *Service
	accounts  *fakeAccounts
	roles     *fakeRoles
	students  *fakeStudents
	companies *fakeCompanies
	documents *fakeDocuments
	objects   *fakeObjects
}

func newFixture() *fixture {
	f := &fixture{
		accounts:  &fakeAccounts{existing: map[string]*entity.Account{}},
		roles:     &fakeRoles{},
		students:  &fakeStudents{},
		companies: &fakeCompanies{},
		documents: &fakeDocuments{},
		objects:   &fakeObjects{},
	}
	f.svc = NewService(f.accounts, f.roles, f.students, f.companies, f.documents, f.objects)
	return f
}

func validStudent() Request {
	return Request{
		Role:      "student",
		Email:     "s@x.com",
		Password:  "super-secret-1",
		StudentID: "6401234",
		Name:      "Sam Student",
		Faculty:   "Software and Knowledge Engineering (SKE)",
		Year:      "3",
		Phone:     "0812345678",
	}
}

func validCompany() Request {
	return Request{
		Role:        "company",
		Email:       "a@x.com",
		Password:    "super-secret-1",
		CompanyName: "Acme Co",
		Address:     "1 Industry Rd",
		Phone:       "021234567",
		Description: "We make everything.",
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	f := newFixture()
	req := validStudent()
	req.Role = "director"

	_, err := f.svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Empty(t, f.accounts.created)
}

func TestRegisterValidationFailureMakesNoChanges(t *testing.T) {
	f := newFixture()
	req := validStudent()
	req.Email = "not-an-email"
	req.Phone = ""

	_, err := f.svc.Register(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
	assert.Empty(t, f.accounts.created)
	assert.Empty(t, f.students.created)
	assert.Empty(t, f.objects.saved)
}

func TestRegisterYearValidation(t *testing.T) {
	f := newFixture()

	req := validStudent()
	req.Year = "Alumni"
	_, err := f.svc.Register(context.Background(), req)
	require.NoError(t, err)

	req = validStudent()
	req.Email = "other@x.com"
	req.Year = "12"
	_, err = f.svc.Register(context.Background(), req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), validStudent())
	require.NoError(t, err)

	// same email under the other role still collides
	req := validCompany()
	req.Email = "s@x.com"
	_, err = f.svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateAccount)
	assert.Len(t, f.accounts.created, 1)
}

func TestRegisterDuplicateSurfacedByInsert(t *testing.T) {
	// The fast-path check can miss a concurrent insert; the unique index
	// rejection maps to the same error.
	f := newFixture()
	f.accounts.existing["s@x.com"] = &entity.Account{ID: 5, Email: "s@x.com"}

	_, err := f.svc.Register(context.Background(), validStudent())
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterStudent(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Register(context.Background(), validStudent())
	require.NoError(t, err)
	assert.Equal(t, "/student/dashboard", result.RedirectTo)

	require.Len(t, f.accounts.created, 1)
	acc := f.accounts.created[0]
	assert.Equal(t, "Sam Student", acc.Username)
	require.NotNil(t, acc.RoleID)
	assert.Equal(t, 1, *acc.RoleID)
	require.NotNil(t, acc.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*acc.PasswordHash), []byte("super-secret-1")))

	require.Len(t, f.students.created, 1)
	assert.Equal(t, acc.ID, f.students.created[0].AccountID)
	assert.Nil(t, f.students.created[0].Transcript)
	assert.Empty(t, f.companies.created)
}

func TestRegisterStudentWithTranscript(t *testing.T) {
	f := newFixture()
	req := validStudent()
	req.Transcript = &Attachment{
		Filename: "transcript.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
		Size:     8,
	}

	_, err := f.svc.Register(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.objects.saved, 1)
	require.Len(t, f.documents.created, 1)
	assert.Equal(t, entity.DocTypeTranscript, f.documents.created[0].DocTypeID)
	require.NotNil(t, f.students.created[0].Transcript)
	assert.Equal(t, f.objects.saved[0], *f.students.created[0].Transcript)
}

func TestRegisterCompany(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Register(context.Background(), validCompany())
	require.NoError(t, err)
	assert.Equal(t, "/company/dashboard", result.RedirectTo)

	require.Len(t, f.companies.created, 1)
	company := f.companies.created[0]
	assert.Equal(t, entity.StatusPending, company.RegistrationStatus)
	assert.Nil(t, company.Website)
	assert.Equal(t, "Acme Co", f.accounts.created[0].Username)
	assert.Empty(t, f.students.created)
}

func TestRegisterCompanyEvidenceFailureDoesNotAbort(t *testing.T) {
	f := newFixture()
	f.objects.err = errors.New("bucket unavailable")
	req := validCompany()
	req.Evidence = &Attachment{
		Filename: "evidence.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
		Size:     8,
	}

	result, err := f.svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/company/dashboard", result.RedirectTo)

	require.Len(t, f.companies.created, 1)
	assert.Equal(t, entity.StatusPending, f.companies.created[0].RegistrationStatus)
	assert.Empty(t, f.documents.created)
}
