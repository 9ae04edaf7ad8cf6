package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/arknat/hr-backend/internal/domain"
	"github.com/arknat/hr-backend/internal/identity"
	"github.com/arknat/hr-backend/internal/observability/metrics"
)

// CoverageService implements the guard-coverage workflow: assigning an
// applicant to an open shift and later finalizing the payment for it.
type CoverageService struct {
	applicants  domain.ApplicantRepository
	shifts      domain.ShiftRepository
	employees   domain.EmployeeRepository
	payments    domain.PaymentRepository
	assignments domain.AssignmentRepository
	identity    IdentityFactory
	logger      *slog.Logger
}

// NewCoverageService creates a new coverage service
func NewCoverageService(
	applicants domain.ApplicantRepository,
	shifts domain.ShiftRepository,
	employees domain.EmployeeRepository,
	payments domain.PaymentRepository,
	assignments domain.AssignmentRepository,
	identityFactory IdentityFactory,
	logger *slog.Logger,
) *CoverageService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CoverageService{
		applicants:  applicants,
		shifts:      shifts,
		employees:   employees,
		payments:    payments,
		assignments: assignments,
		identity:    identityFactory,
		logger:      logger,
	}
}

// AssignGuard assigns an applicant to a coverage shift: reuse or create the
// employee profile and its identity account, record the pending payment, then
// approve the applicant and close the shift.
//
// The payment insert and the two closing updates are not wrapped in a
// transaction; a crash in between can leave a dangling payment or an open
// shift. Re-invoking after a partial failure is not safe (no idempotency key).
func (s *CoverageService) AssignGuard(ctx context.Context, applicantID, shiftID string) (err error) {
	defer func() { metrics.ObserveAssignment(metrics.Result(err)) }()

	if applicantID == "" || shiftID == "" {
		return errors.New("applicant id and shift id are required")
	}

	var (
		applicant *domain.Applicant
		shift     *domain.Shift
	)

	fetch, _ := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		var ferr error
		applicant, ferr = s.applicants.GetByID(applicantID)
		return ferr
	})
	fetch.Go(func() error {
		var ferr error
		shift, ferr = s.shifts.GetByID(shiftID)
		return ferr
	})
	if err = fetch.Wait(); err != nil {
		return err
	}

	// Decide once whether the applicant already has an employee profile, then
	// branch explicitly.
	var publicUserID string
	existing, lookupErr := s.employees.GetByIDNumber(applicant.IDNumber)
	switch {
	case lookupErr == nil:
		publicUserID = existing.ID
		s.logger.Info("employee profile already exists, updating status",
			slog.String("id_number", applicant.IDNumber),
			slog.String("user_id", publicUserID),
		)
		if err = s.employees.UpdateEmploymentStatus(publicUserID, domain.EmploymentStatusCoverage); err != nil {
			return fmt.Errorf("failed to update existing user: %w", err)
		}
	case errors.Is(lookupErr, domain.ErrNotFound):
		s.logger.Info("no employee profile found, creating one",
			slog.String("id_number", applicant.IDNumber),
		)
		publicUserID, err = s.createCoverageGuard(ctx, applicant, shift)
		if err != nil {
			return err
		}
	default:
		return lookupErr
	}

	payment := &domain.Payment{
		CoverageShiftID:   shiftID,
		ApplicantID:       applicantID,
		CoveringGuardName: applicant.FullName,
		PaymentAmount:     shift.CoveragePay,
		ApplicantIBAN:     applicant.IBAN,
		ApplicantBankName: bankNameOrDefault(applicant.BankName),
		ShiftDate:         shift.CreatedAt.UTC().Format("2006-01-02"),
		Status:            domain.PaymentStatusPendingOpsApproval,
		AbsentGuardID:     shift.CoveredUserID,
	}
	if err = s.payments.Create(payment); err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}

	// The two closing updates run concurrently; each result is collected and
	// any failure is surfaced.
	closing := new(errgroup.Group)
	closing.Go(func() error {
		return s.applicants.MarkApproved(applicantID, publicUserID)
	})
	closing.Go(func() error {
		return s.shifts.Close(shiftID)
	})
	if err = closing.Wait(); err != nil {
		return fmt.Errorf("payment recorded but closing updates failed: %w", err)
	}

	s.logger.Info("coverage guard assigned",
		slog.String("applicant_id", applicantID),
		slog.String("shift_id", shiftID),
		slog.String("user_id", publicUserID),
		slog.Float64("payment_amount", shift.CoveragePay),
	)

	return nil
}

// createCoverageGuard provisions an identity account and an employee profile
// as a pair. If the profile insert fails the identity account is deleted
// again so no orphaned credential is left behind.
func (s *CoverageService) createCoverageGuard(ctx context.Context, applicant *domain.Applicant, shift *domain.Shift) (string, error) {
	idp := s.identity()

	// Bootstrap credential mandated by the onboarding flow: the guard logs in
	// with their national id number and is forced to change it. Known
	// security smell, kept deliberately.
	account, err := idp.CreateUser(ctx, identity.CreateUserParams{
		Email:        applicant.IDNumber + "@arknat-system.com",
		Password:     applicant.IDNumber,
		EmailConfirm: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create auth user: %w", err)
	}

	employee := &domain.Employee{
		AuthUserID:       account.ID,
		Name:             applicant.FullName,
		IDNumber:         applicant.IDNumber,
		Phone:            applicant.PhoneNumber,
		IBAN:             applicant.IBAN,
		BankName:         bankNameOrDefault(applicant.BankName),
		Role:             domain.RoleGuard,
		EmploymentStatus: domain.EmploymentStatusCoverage,
		Status:           domain.EmployeeStatusActive,
		Project:          []string{shift.Project},
		Location:         shift.Location,
		Region:           shift.Region,
		City:             shift.City,
		VacancyID:        shift.LinkedVacancyID,
	}

	if err := s.employees.Create(employee); err != nil {
		if delErr := idp.DeleteUser(ctx, account.ID); delErr != nil {
			s.logger.Error("failed to roll back orphaned identity account",
				slog.String("auth_user_id", account.ID),
				slog.String("error", delErr.Error()),
			)
		}
		return "", fmt.Errorf("failed to create public user profile: %w", err)
	}

	return employee.ID, nil
}

// FinalizePayment is the terminal transition for a payment: the temporary
// coverage identity is torn down (best effort) and the payment marked paid.
func (s *CoverageService) FinalizePayment(ctx context.Context, paymentID string) (err error) {
	defer func() { metrics.ObserveFinalization(metrics.Result(err)) }()

	if paymentID == "" {
		return errors.New("payment id is required")
	}

	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return err
	}

	assignment, err := s.assignments.GetByShiftID(payment.CoverageShiftID)
	if err != nil {
		return err
	}

	if assignment.GuardAuthUserID != nil && *assignment.GuardAuthUserID != "" {
		idp := s.identity()
		if delErr := idp.DeleteUser(ctx, *assignment.GuardAuthUserID); delErr != nil {
			// Deliberately swallowed: the payment must still be marked paid
			// even if the identity account lingers.
			s.logger.Error("could not delete auth user, proceeding",
				slog.String("auth_user_id", *assignment.GuardAuthUserID),
				slog.String("error", delErr.Error()),
			)
		}
	}

	if err = s.payments.UpdateStatus(payment.ID, domain.PaymentStatusPaid); err != nil {
		return err
	}

	s.logger.Info("payment finalized",
		slog.String("payment_id", payment.ID),
		slog.String("shift_id", payment.CoverageShiftID),
	)

	return nil
}

func bankNameOrDefault(name *string) string {
	if name != nil && *name != "" {
		return *name
	}
	return domain.DefaultBankName
}
