package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/arknat/hr-backend/internal/domain"
)

// PostgresVacancyRepository implements domain.VacancyRepository using PostgreSQL
type PostgresVacancyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresVacancyRepository creates a new vacancy repository
func NewPostgresVacancyRepository(db *sql.DB, logger *slog.Logger) *PostgresVacancyRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVacancyRepository{
		db:     db,
		logger: logger,
	}
}

// Reopen marks a job vacancy as open again, typically after the employee
// holding it was deleted.
func (r *PostgresVacancyRepository) Reopen(id string) error {
	query := `
		UPDATE job_vacancies
		SET status = $1
		WHERE id = $2
	`

	if _, err := r.db.Exec(query, domain.VacancyStatusOpen, id); err != nil {
		r.logger.Error("failed to reopen vacancy",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to reopen vacancy: %w", err)
	}

	return nil
}
