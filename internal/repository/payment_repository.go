package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arknat/hr-backend/internal/domain"
)

// PostgresPaymentRepository implements domain.PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPaymentRepository creates a new payment repository
func NewPostgresPaymentRepository(db *sql.DB, logger *slog.Logger) *PostgresPaymentRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new coverage payment row
func (r *PostgresPaymentRepository) Create(payment *domain.Payment) error {
	query := `
		INSERT INTO coverage_payments (
			coverage_shift_id, applicant_id, covering_guard_name, payment_amount,
			applicant_iban, applicant_bank_name, shift_date, status, absent_guard_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		payment.CoverageShiftID,
		payment.ApplicantID,
		payment.CoveringGuardName,
		payment.PaymentAmount,
		payment.ApplicantIBAN,
		payment.ApplicantBankName,
		payment.ShiftDate,
		payment.Status,
		payment.AbsentGuardID,
	).Scan(&payment.ID)

	if err != nil {
		r.logger.Error("failed to create payment record",
			slog.String("shift_id", payment.CoverageShiftID),
			slog.String("applicant_id", payment.ApplicantID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create payment record: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by ID
func (r *PostgresPaymentRepository) GetByID(id string) (*domain.Payment, error) {
	payment := &domain.Payment{}

	query := `
		SELECT id, coverage_shift_id, applicant_id, covering_guard_name, payment_amount,
		       applicant_iban, applicant_bank_name, shift_date, status, absent_guard_id
		FROM coverage_payments
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(
		&payment.ID,
		&payment.CoverageShiftID,
		&payment.ApplicantID,
		&payment.CoveringGuardName,
		&payment.PaymentAmount,
		&payment.ApplicantIBAN,
		&payment.ApplicantBankName,
		&payment.ShiftDate,
		&payment.Status,
		&payment.AbsentGuardID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
		}
		r.logger.Error("failed to get payment by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// UpdateStatus moves a payment to a new status
func (r *PostgresPaymentRepository) UpdateStatus(id, status string) error {
	query := `
		UPDATE coverage_payments
		SET status = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(query, status, id)
	if err != nil {
		r.logger.Error("failed to update payment status",
			slog.String("id", id),
			slog.String("status", status),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to update payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
