package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arknat/hr-backend/internal/domain"
	"github.com/arknat/hr-backend/internal/identity"
	"github.com/arknat/hr-backend/internal/observability/metrics"
	"github.com/arknat/hr-backend/internal/security/audit"
)

// EmployeeService handles employee lifecycle: creation with a paired identity
// account, deletion with vacancy reopening, and password updates.
type EmployeeService struct {
	employees domain.EmployeeRepository
	vacancies domain.VacancyRepository
	identity  IdentityFactory
	audit     *audit.Logger
	logger    *slog.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employees domain.EmployeeRepository,
	vacancies domain.VacancyRepository,
	identityFactory IdentityFactory,
	auditLogger *audit.Logger,
	logger *slog.Logger,
) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EmployeeService{
		employees: employees,
		vacancies: vacancies,
		identity:  identityFactory,
		audit:     auditLogger,
		logger:    logger,
	}
}

// CreateEmployeeParams carry the profile fields plus the initial password.
type CreateEmployeeParams struct {
	Name             string   `json:"name"`
	IDNumber         string   `json:"id_number"`
	Phone            string   `json:"phone"`
	IBAN             string   `json:"iban"`
	BankName         string   `json:"bank_name"`
	Role             string   `json:"role"`
	EmploymentStatus string   `json:"employment_status"`
	Status           string   `json:"status"`
	Project          []string `json:"project"`
	Location         string   `json:"location"`
	Region           string   `json:"region"`
	City             string   `json:"city"`
	VacancyID        *string  `json:"vacancy_id"`
	Password         string   `json:"password"`
}

// Create provisions a new employee: identity account first, then the profile
// row. The id_number uniqueness check is a lookup, not a constraint this
// service can enforce atomically.
func (s *EmployeeService) Create(ctx context.Context, params CreateEmployeeParams) (employee *domain.Employee, err error) {
	defer func() { metrics.ObserveEmployeeMutation("create", metrics.Result(err)) }()

	if params.IDNumber == "" || params.Password == "" || params.Name == "" || params.Role == "" {
		return nil, errors.New("name, id number, password and role are required")
	}

	_, lookupErr := s.employees.GetByIDNumber(params.IDNumber)
	switch {
	case lookupErr == nil:
		return nil, errors.New("this id number is already registered to another employee")
	case !errors.Is(lookupErr, domain.ErrNotFound):
		return nil, lookupErr
	}

	idp := s.identity()

	account, err := idp.CreateUser(ctx, identity.CreateUserParams{
		Email:        params.IDNumber + "@arknat-system.com",
		Password:     params.Password,
		EmailConfirm: true,
		UserMetadata: map[string]any{"name": params.Name, "role": params.Role},
	})
	if err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}

	employee = &domain.Employee{
		AuthUserID:       account.ID,
		Name:             params.Name,
		IDNumber:         params.IDNumber,
		Phone:            params.Phone,
		IBAN:             params.IBAN,
		BankName:         params.BankName,
		Role:             params.Role,
		EmploymentStatus: params.EmploymentStatus,
		Status:           status,
		Project:          params.Project,
		Location:         params.Location,
		Region:           params.Region,
		City:             params.City,
		VacancyID:        params.VacancyID,
	}

	if err = s.employees.Create(employee); err != nil {
		if delErr := idp.DeleteUser(ctx, account.ID); delErr != nil {
			s.logger.Error("failed to roll back orphaned identity account",
				slog.String("auth_user_id", account.ID),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, fmt.Errorf("failed to save employee profile: %w", err)
	}

	s.logger.Info("employee created",
		slog.String("user_id", employee.ID),
		slog.String("id_number", employee.IDNumber),
		slog.String("role", employee.Role),
	)

	return employee, nil
}

// Delete removes the identity account and profile row of an employee, then
// reopens the vacancy the employee was filling, if any.
func (s *EmployeeService) Delete(ctx context.Context, userID, authUserID string) (err error) {
	defer func() { metrics.ObserveEmployeeMutation("delete", metrics.Result(err)) }()

	if userID == "" || authUserID == "" {
		return errors.New("user id and auth user id are required")
	}

	// Grab the linked vacancy before the row disappears.
	var vacancyID *string
	employee, lookupErr := s.employees.GetByID(userID)
	if lookupErr != nil {
		s.logger.Warn("could not load employee before deletion, maybe already deleted",
			slog.String("user_id", userID),
			slog.String("error", lookupErr.Error()),
		)
	} else {
		vacancyID = employee.VacancyID
	}

	idp := s.identity()
	if delErr := idp.DeleteUser(ctx, authUserID); delErr != nil {
		// An already-deleted identity account is fine.
		if !strings.Contains(strings.ToLower(delErr.Error()), "user not found") {
			return delErr
		}
	}

	if err = s.employees.Delete(userID); err != nil {
		return err
	}

	if vacancyID != nil && *vacancyID != "" {
		if reopenErr := s.vacancies.Reopen(*vacancyID); reopenErr != nil {
			s.logger.Error("could not reopen vacancy",
				slog.String("vacancy_id", *vacancyID),
				slog.String("error", reopenErr.Error()),
			)
		}
	}

	s.audit.LogEmployeeDeletion(ctx, authUserID, userID, "deleted", "")

	return nil
}

// UpdatePassword replaces an employee's login password via the identity
// provider. Callers are not role-checked here; the endpoint is protected at
// the edge.
func (s *EmployeeService) UpdatePassword(ctx context.Context, authID, newPassword string) error {
	if authID == "" || newPassword == "" {
		return errors.New("user auth id and new password are required")
	}
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters long")
	}

	idp := s.identity()
	if err := idp.UpdatePassword(ctx, authID, newPassword); err != nil {
		return err
	}

	s.logger.Info("employee password updated", slog.String("auth_user_id", authID))

	return nil
}
