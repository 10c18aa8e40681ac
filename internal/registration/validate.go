package registration

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ValidationError carries the field-level issues of a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid registration payload (%d fields)", len(e.Fields))
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		fields := make(map[string]string, len(errs))
		for name, fieldErr := range errs {
			fields[name] = fieldErr.Error()
		}
		return &ValidationError{Fields: fields}
	}
	return err
}

type studentPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Faculty   string `json:"faculty"`
	Year      string `json:"year"`
	Phone     string `json:"phone"`
}

func (p studentPayload) Validate() error {
	return asValidationError(validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&p.StudentID, validation.Required, validation.Length(1, 20)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Faculty, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Year, validation.Required, validation.By(validateYear)),
		validation.Field(&p.Phone, validation.Required, validation.Length(9, 15), is.Digit),
	))
}

// validateYear accepts a year of study 1..8 or the sentinel "Alumni".
func validateYear(value interface{}) error {
	s, _ := value.(string)
	if s == "Alumni" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 8 {
		return fmt.Errorf("must be a year between 1 and 8 or Alumni")
	}
	return nil
}

type companyPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

func (p companyPayload) Validate() error {
	return asValidationError(validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&p.CompanyName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Address, validation.Required, validation.Length(1, 500)),
		validation.Field(&p.Phone, validation.Required, validation.Length(9, 15), is.Digit),
		validation.Field(&p.Description, validation.Required, validation.Length(1, 2000)),
		validation.Field(&p.Website, is.URL),
	))
}
