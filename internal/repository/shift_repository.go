package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arknat/hr-backend/internal/domain"
)

// PostgresShiftRepository implements domain.ShiftRepository using PostgreSQL
type PostgresShiftRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresShiftRepository creates a new shift repository
func NewPostgresShiftRepository(db *sql.DB, logger *slog.Logger) *PostgresShiftRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresShiftRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a coverage shift by ID
func (r *PostgresShiftRepository) GetByID(id string) (*domain.Shift, error) {
	shift := &domain.Shift{}

	query := `
		SELECT id, project, location, region, city, linked_vacancy_id,
		       coverage_pay, covered_user_id, status, created_at
		FROM coverage_shifts
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(
		&shift.ID,
		&shift.Project,
		&shift.Location,
		&shift.Region,
		&shift.City,
		&shift.LinkedVacancyID,
		&shift.CoveragePay,
		&shift.CoveredUserID,
		&shift.Status,
		&shift.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("coverage shift %s: %w", id, domain.ErrNotFound)
		}
		r.logger.Error("failed to get shift by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}

	return shift, nil
}

// Close marks a coverage shift as closed
func (r *PostgresShiftRepository) Close(id string) error {
	query := `
		UPDATE coverage_shifts
		SET status = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(query, domain.ShiftStatusClosed, id)
	if err != nil {
		r.logger.Error("failed to close shift",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to close shift: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("coverage shift %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
