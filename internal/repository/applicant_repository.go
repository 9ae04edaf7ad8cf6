package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arknat/hr-backend/internal/domain"
)

// PostgresApplicantRepository implements domain.ApplicantRepository using PostgreSQL
type PostgresApplicantRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresApplicantRepository creates a new applicant repository
func NewPostgresApplicantRepository(db *sql.DB, logger *slog.Logger) *PostgresApplicantRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresApplicantRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an applicant by ID
func (r *PostgresApplicantRepository) GetByID(id string) (*domain.Applicant, error) {
	applicant := &domain.Applicant{}

	query := `
		SELECT id, full_name, id_number, phone_number, iban, bank_name, status, applicant_user_id
		FROM coverage_applicants
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(
		&applicant.ID,
		&applicant.FullName,
		&applicant.IDNumber,
		&applicant.PhoneNumber,
		&applicant.IBAN,
		&applicant.BankName,
		&applicant.Status,
		&applicant.UserID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("applicant %s: %w", id, domain.ErrNotFound)
		}
		r.logger.Error("failed to get applicant by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}

	return applicant, nil
}

// MarkApproved sets the applicant's final approval status and links the
// employee profile that was created or reused for them.
func (r *PostgresApplicantRepository) MarkApproved(id, userID string) error {
	query := `
		UPDATE coverage_applicants
		SET status = $1, applicant_user_id = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(query, domain.ApplicantStatusApproved, userID, id)
	if err != nil {
		r.logger.Error("failed to approve applicant",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to approve applicant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("applicant %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
