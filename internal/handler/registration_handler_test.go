package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement/internal/registration"
)

type fakeRegistrar struct {
	got    registration.Request
	result registration.Result
	err    error
}

func (f *fakeRegistrar) Register(_ context.Context, req registration.Request) (registration.Result, error) {
	f.got = req
	return f.result, f.err
}

func registrationForm(t *testing.T, fields map[string]string, fileField, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postRegistration(t *testing.T, h *RegistrationHandler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	return rec
}

func TestRegisterHandlerSuccess(t *testing.T) {
	svc := &fakeRegistrar{result: registration.Result{AccountID: 12, RedirectTo: "/company/dashboard"}}
	h := NewRegistrationHandler(svc)

	body, ct := registrationForm(t, map[string]string{
		"role":        "company",
		"email":       "hr@acme.test",
		"password":    "secret123",
		"companyName": "Acme",
	}, "evidence", "registration.pdf", "pdf-bytes")

	rec := postRegistration(t, h, body, ct)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Account created successfully", resp["message"])
	assert.Equal(t, "/company/dashboard", resp["redirectTo"])

	assert.Equal(t, "company", svc.got.Role)
	assert.Equal(t, "hr@acme.test", svc.got.Email)
	require.NotNil(t, svc.got.Evidence)
	assert.Equal(t, "registration.pdf", svc.got.Evidence.Filename)
	assert.Nil(t, svc.got.Transcript)
}

func TestRegisterHandlerInvalidRole(t *testing.T) {
	svc := &fakeRegistrar{err: registration.ErrInvalidRole}
	h := NewRegistrationHandler(svc)

	body, ct := registrationForm(t, map[string]string{"role": "wizard"}, "", "", "")
	rec := postRegistration(t, h, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid role"}`, rec.Body.String())
}

func TestRegisterHandlerValidationDetails(t *testing.T) {
	svc := &fakeRegistrar{err: &registration.ValidationError{
		Fields: map[string]string{"email": "must be a valid email address"},
	}}
	h := NewRegistrationHandler(svc)

	body, ct := registrationForm(t, map[string]string{"role": "student"}, "", "", "")
	rec := postRegistration(t, h, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Invalid data", resp.Error)
	assert.Equal(t, "must be a valid email address", resp.Details["email"])
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	svc := &fakeRegistrar{err: registration.ErrDuplicateAccount}
	h := NewRegistrationHandler(svc)

	body, ct := registrationForm(t, map[string]string{"role": "student"}, "", "", "")
	rec := postRegistration(t, h, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
}

func TestRegisterHandlerRejectsNonMultipart(t *testing.T) {
	h := NewRegistrationHandler(&fakeRegistrar{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"role":"student"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid form data"}`, rec.Body.String())
}
