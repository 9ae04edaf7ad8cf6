package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/arknat/hr-backend/internal/domain"
)

// PostgresEmployeeRepository implements domain.EmployeeRepository using PostgreSQL
type PostgresEmployeeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresEmployeeRepository creates a new employee repository
func NewPostgresEmployeeRepository(db *sql.DB, logger *slog.Logger) *PostgresEmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeRepository{
		db:     db,
		logger: logger,
	}
}

const employeeColumns = `
	id, auth_user_id, name, id_number, phone, iban, bank_name,
	role, employment_status, status, project, location, region, city, vacancy_id
`

// Create inserts a new employee profile. The generated ID is written back
// into the passed struct.
func (r *PostgresEmployeeRepository) Create(employee *domain.Employee) error {
	query := `
		INSERT INTO users (
			auth_user_id, name, id_number, phone, iban, bank_name,
			role, employment_status, status, project, location, region, city, vacancy_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		employee.AuthUserID,
		employee.Name,
		employee.IDNumber,
		employee.Phone,
		employee.IBAN,
		employee.BankName,
		employee.Role,
		employee.EmploymentStatus,
		employee.Status,
		pq.Array(employee.Project),
		employee.Location,
		employee.Region,
		employee.City,
		employee.VacancyID,
	).Scan(&employee.ID)

	if err != nil {
		r.logger.Error("failed to create employee profile",
			slog.String("id_number", employee.IDNumber),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create employee profile: %w", err)
	}

	return nil
}

// GetByID retrieves an employee profile by its primary key
func (r *PostgresEmployeeRepository) GetByID(id string) (*domain.Employee, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByIDNumber retrieves an employee profile by national id number
func (r *PostgresEmployeeRepository) GetByIDNumber(idNumber string) (*domain.Employee, error) {
	return r.getOne(`WHERE id_number = $1`, idNumber)
}

// GetByAuthUserID retrieves an employee profile by its identity-provider reference
func (r *PostgresEmployeeRepository) GetByAuthUserID(authUserID string) (*domain.Employee, error) {
	return r.getOne(`WHERE auth_user_id = $1`, authUserID)
}

func (r *PostgresEmployeeRepository) getOne(where string, arg string) (*domain.Employee, error) {
	employee := &domain.Employee{}

	query := `SELECT ` + employeeColumns + ` FROM users ` + where

	err := r.db.QueryRow(query, arg).Scan(
		&employee.ID,
		&employee.AuthUserID,
		&employee.Name,
		&employee.IDNumber,
		&employee.Phone,
		&employee.IBAN,
		&employee.BankName,
		&employee.Role,
		&employee.EmploymentStatus,
		&employee.Status,
		pq.Array(&employee.Project),
		&employee.Location,
		&employee.Region,
		&employee.City,
		&employee.VacancyID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee: %w", domain.ErrNotFound)
		}
		r.logger.Error("failed to get employee",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// UpdateEmploymentStatus updates only the employment_status field
func (r *PostgresEmployeeRepository) UpdateEmploymentStatus(id, status string) error {
	query := `
		UPDATE users
		SET employment_status = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(query, status, id)
	if err != nil {
		r.logger.Error("failed to update employment status",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an employee profile row
func (r *PostgresEmployeeRepository) Delete(id string) error {
	query := `
		DELETE FROM users
		WHERE id = $1
	`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
