package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arknat/hr-backend/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWriteErrorMapsPermissionDenied(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: role cannot impersonate_user", domain.ErrPermissionDenied))

	assert.Equal(t, 403, rec.Code)
	assert.Equal(t, "Permission Denied", decodeError(t, rec).Error)
}

func TestWriteErrorDefaultsToBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("failed to create payment record: boom"))

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "failed to create payment record: boom", decodeError(t, rec).Error)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWriteErrorNotFoundIsBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("payment P1: %w", domain.ErrNotFound))

	assert.Equal(t, 400, rec.Code)
}
