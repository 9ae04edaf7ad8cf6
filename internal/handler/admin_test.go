package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImpersonateRequiresTarget(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.Impersonate(rec, postJSON("/api/admin/impersonate", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Target User ID is required.")
}

func TestImpersonateRequiresBearerToken(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.Impersonate(rec, postJSON("/api/admin/impersonate", `{"target_user_id":"auth-1"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not identify the calling user.")
}

func TestResetPasswordValidatesInput(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	for _, body := range []string{
		`{}`,
		`{"auth_id":"auth-1"}`,
		`{"auth_id":"auth-1","new_password":"short"}`,
		`{"new_password":"longenough"}`,
	} {
		rec := httptest.NewRecorder()
		h.ResetPassword(rec, postJSON("/api/admin/reset-password", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "User ID and a valid password (min 6 chars) are required.")
	}
}

func TestResetPasswordRequiresBearerToken(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.ResetPassword(rec, postJSON("/api/admin/reset-password", `{"auth_id":"auth-1","new_password":"longenough"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not identify the calling user.")
}
