package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arknat/hr-backend/internal/domain"
	"github.com/arknat/hr-backend/internal/observability/metrics"
	"github.com/arknat/hr-backend/internal/security"
	"github.com/arknat/hr-backend/internal/security/audit"
	"github.com/arknat/hr-backend/internal/security/auth"
)

const impersonationTokenTTL = time.Hour

// AdminService implements the system-admin-only operations: impersonating an
// employee and resetting passwords. The caller is authorized exactly once,
// immediately before the privileged identity client is constructed.
type AdminService struct {
	employees domain.EmployeeRepository
	identity  IdentityFactory
	tokens    *auth.TokenManager
	authz     *security.AuthorizationService
	audit     *audit.Logger
	logger    *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	employees domain.EmployeeRepository,
	identityFactory IdentityFactory,
	tokens *auth.TokenManager,
	authz *security.AuthorizationService,
	auditLogger *audit.Logger,
	logger *slog.Logger,
) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminService{
		employees: employees,
		identity:  identityFactory,
		tokens:    tokens,
		authz:     authz,
		audit:     auditLogger,
		logger:    logger,
	}
}

// authorizeCaller resolves the caller behind a bearer token to an employee
// profile and validates the requested permission. Errors wrap
// domain.ErrPermissionDenied where the caller is known but not allowed.
func (s *AdminService) authorizeCaller(ctx context.Context, callerToken string, perm security.Permission) (string, error) {
	callerAuthID, err := s.tokens.VerifyCaller(callerToken)
	if err != nil {
		return "", err
	}

	profile, err := s.employees.GetByAuthUserID(callerAuthID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.audit.LogDenied(ctx, callerAuthID, "no employee profile for caller")
			return "", fmt.Errorf("%w: no profile for calling user", domain.ErrPermissionDenied)
		}
		return "", err
	}

	if err := s.authz.ValidatePermission(security.Role(profile.Role), perm); err != nil {
		s.audit.LogDenied(ctx, callerAuthID, "role "+profile.Role)
		return "", err
	}

	return callerAuthID, nil
}

// Impersonate issues a one-hour access token for the target user, signed with
// the identity provider's secret so it is indistinguishable from a real login.
func (s *AdminService) Impersonate(ctx context.Context, callerToken, targetUserID string) (string, error) {
	if targetUserID == "" {
		return "", errors.New("target user id is required")
	}

	callerID, err := s.authorizeCaller(ctx, callerToken, security.PermImpersonate)
	if err != nil {
		return "", err
	}

	idp := s.identity()

	target, err := idp.GetUser(ctx, targetUserID)
	if err != nil {
		return "", fmt.Errorf("target user %s: %w", targetUserID, domain.ErrNotFound)
	}

	accessToken, err := s.tokens.SignImpersonationToken(target, impersonationTokenTTL)
	if err != nil {
		return "", err
	}

	s.audit.LogImpersonation(ctx, callerID, targetUserID, "issued")
	metrics.ObserveIdentityRequest("impersonate", "success")

	return accessToken, nil
}

// ResetPassword sets a new password on the target identity account.
func (s *AdminService) ResetPassword(ctx context.Context, callerToken, authID, newPassword string) error {
	if authID == "" || len(newPassword) < 6 {
		return errors.New("user id and a valid password (min 6 chars) are required")
	}

	callerID, err := s.authorizeCaller(ctx, callerToken, security.PermResetPassword)
	if err != nil {
		return err
	}

	idp := s.identity()

	if err := idp.UpdatePassword(ctx, authID, newPassword); err != nil {
		return err
	}

	s.audit.LogPasswordReset(ctx, callerID, authID, "updated")

	s.logger.Info("password reset by admin",
		slog.String("caller_auth_id", callerID),
		slog.String("target_auth_id", authID),
	)

	return nil
}
