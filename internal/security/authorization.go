package security

import (
	"fmt"
	"log/slog"

	"github.com/arknat/hr-backend/internal/domain"
)

// Role is an employee role as stored in the users table
type Role string

const (
	RoleSystemAdmin Role = domain.RoleSystemAdmin
	RoleGuard       Role = domain.RoleGuard
)

// Permission represents an action permission
type Permission string

const (
	PermImpersonate     Permission = "impersonate_user"
	PermResetPassword   Permission = "reset_password"
	PermManageEmployees Permission = "manage_employees"
	PermAssignCoverage  Permission = "assign_coverage"
	PermFinalizePayment Permission = "finalize_payment"
)

// RolePermissions maps roles to their permissions. Only system admins hold
// privileged permissions; guards hold none of them.
var RolePermissions = map[Role][]Permission{
	RoleSystemAdmin: {
		PermImpersonate,
		PermResetPassword,
		PermManageEmployees,
		PermAssignCoverage,
		PermFinalizePayment,
	},
	RoleGuard: {},
}

// AuthorizationService handles authorization checks
type AuthorizationService struct {
	logger *slog.Logger
}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService(logger *slog.Logger) *AuthorizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizationService{
		logger: logger,
	}
}

// HasPermission checks if a role has a specific permission
func (as *AuthorizationService) HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidatePermission validates that a role has a specific permission. The
// returned error wraps domain.ErrPermissionDenied so handlers can map it to
// a 403 response.
func (as *AuthorizationService) ValidatePermission(role Role, permission Permission) error {
	if !as.HasPermission(role, permission) {
		as.logger.Warn("permission denied",
			slog.String("role", string(role)),
			slog.String("permission", string(permission)),
		)
		return fmt.Errorf("%w: role cannot %s", domain.ErrPermissionDenied, permission)
	}
	return nil
}

// GetRolePermissions returns all permissions for a role
func (as *AuthorizationService) GetRolePermissions(role Role) []Permission {
	return RolePermissions[role]
}
