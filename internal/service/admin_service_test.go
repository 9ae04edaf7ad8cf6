package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arknat/hr-backend/internal/domain"
	"github.com/arknat/hr-backend/internal/identity"
	"github.com/arknat/hr-backend/internal/security"
	"github.com/arknat/hr-backend/internal/security/audit"
	"github.com/arknat/hr-backend/internal/security/auth"
)

const adminTestSecret = "admin-test-secret"

type adminFixture struct {
	employees *fakeEmployeeRepo
	idp       *fakeIdentityAdmin
	tokens    *auth.TokenManager
	svc       *AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		employees: newFakeEmployeeRepo(),
		idp:       newFakeIdentityAdmin(),
		tokens:    auth.NewTokenManager(adminTestSecret),
	}

	f.employees.add(&domain.Employee{
		ID:         "U-admin",
		AuthUserID: "auth-admin",
		IDNumber:   "1000000001",
		Role:       domain.RoleSystemAdmin,
	})
	f.employees.add(&domain.Employee{
		ID:         "U-guard",
		AuthUserID: "auth-guard",
		IDNumber:   "1000000002",
		Role:       domain.RoleGuard,
	})

	f.svc = NewAdminService(
		f.employees, identityFactoryFor(f.idp), f.tokens,
		security.NewAuthorizationService(discardLogger()),
		audit.NewLogger(discardLogger()),
		discardLogger(),
	)
	return f
}

func (f *adminFixture) callerToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(adminTestSecret))
	require.NoError(t, err)
	return signed
}

func TestImpersonateIssuesTargetToken(t *testing.T) {
	f := newAdminFixture()
	f.idp.accounts["auth-guard"] = &identity.Account{
		ID:          "auth-guard",
		Email:       "1000000002@arknat-system.com",
		AppMetadata: map[string]any{"provider": "email"},
	}

	signed, err := f.svc.Impersonate(context.Background(), f.callerToken(t, "auth-admin"), "auth-guard")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(adminTestSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "auth-guard", claims["sub"])
	assert.Equal(t, "authenticated", claims["aud"])
	assert.Equal(t, "authenticated", claims["role"])
	assert.Equal(t, "email", claims["provider"])
}

func TestImpersonateDeniedForGuard(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.Impersonate(context.Background(), f.callerToken(t, "auth-guard"), "auth-admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}

func TestImpersonateDeniedForUnknownCaller(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.Impersonate(context.Background(), f.callerToken(t, "auth-stranger"), "auth-guard")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}

func TestImpersonateRejectsBadToken(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.Impersonate(context.Background(), "not.a.jwt", "auth-guard")
	require.Error(t, err)
}

func TestImpersonateTargetNotFound(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.Impersonate(context.Background(), f.callerToken(t, "auth-admin"), "auth-ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestImpersonateRequiresTarget(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.Impersonate(context.Background(), f.callerToken(t, "auth-admin"), "")
	require.Error(t, err)
}

func TestResetPasswordByAdmin(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.ResetPassword(context.Background(), f.callerToken(t, "auth-admin"), "auth-guard", "newsecret")
	require.NoError(t, err)
	assert.Equal(t, "newsecret", f.idp.passwordUpdates["auth-guard"])
}

func TestResetPasswordDeniedForGuard(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.ResetPassword(context.Background(), f.callerToken(t, "auth-guard"), "auth-admin", "newsecret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	assert.Empty(t, f.idp.passwordUpdates)
}

func TestResetPasswordValidatesInput(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.ResetPassword(context.Background(), f.callerToken(t, "auth-admin"), "", "newsecret")
	require.Error(t, err)

	err = f.svc.ResetPassword(context.Background(), f.callerToken(t, "auth-admin"), "auth-guard", "short")
	require.Error(t, err)
	assert.Empty(t, f.idp.passwordUpdates)
}
