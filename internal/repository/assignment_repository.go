package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arknat/hr-backend/internal/domain"
)

// PostgresAssignmentRepository implements domain.AssignmentRepository using PostgreSQL
type PostgresAssignmentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresAssignmentRepository creates a new assignment repository
func NewPostgresAssignmentRepository(db *sql.DB, logger *slog.Logger) *PostgresAssignmentRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAssignmentRepository{
		db:     db,
		logger: logger,
	}
}

// GetByShiftID retrieves the assignment for a shift, joined with the covering
// guard's profile to expose the identity-provider reference.
func (r *PostgresAssignmentRepository) GetByShiftID(shiftID string) (*domain.Assignment, error) {
	assignment := &domain.Assignment{}

	query := `
		SELECT a.coverage_shift_id, a.covering_guard_id, u.auth_user_id
		FROM coverage_assignments a
		JOIN users u ON u.id = a.covering_guard_id
		WHERE a.coverage_shift_id = $1
	`

	err := r.db.QueryRow(query, shiftID).Scan(
		&assignment.CoverageShiftID,
		&assignment.CoveringGuardID,
		&assignment.GuardAuthUserID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("coverage assignment for shift %s: %w", shiftID, domain.ErrNotFound)
		}
		r.logger.Error("failed to get assignment by shift id",
			slog.String("shift_id", shiftID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return assignment, nil
}
