package repository

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arknat/hr-backend/internal/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplicantGetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db, testLogger())

	bank := "الراجحي"
	rows := sqlmock.NewRows([]string{
		"id", "full_name", "id_number", "phone_number", "iban", "bank_name", "status", "applicant_user_id",
	}).AddRow("A1", "أحمد", "1098765432", "0555555555", "SA001", bank, "ops_approved", nil)

	mock.ExpectQuery("SELECT id, full_name, id_number").
		WithArgs("A1").
		WillReturnRows(rows)

	applicant, err := repo.GetByID("A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", applicant.ID)
	assert.Equal(t, "1098765432", applicant.IDNumber)
	require.NotNil(t, applicant.BankName)
	assert.Equal(t, bank, *applicant.BankName)
	assert.Nil(t, applicant.UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantGetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db, testLogger())

	mock.ExpectQuery("SELECT id, full_name, id_number").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantMarkApproved(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db, testLogger())

	mock.ExpectExec("UPDATE coverage_applicants").
		WithArgs(domain.ApplicantStatusApproved, "U1", "A1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkApproved("A1", "U1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantMarkApprovedNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db, testLogger())

	mock.ExpectExec("UPDATE coverage_applicants").
		WithArgs(domain.ApplicantStatusApproved, "U1", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkApproved("gone", "U1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
