package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/arknat/hr-backend/internal/security/middleware"
)

// Logger emits structured audit records for privileged actions. Records go to
// the application log; there is no separate audit store.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, callerID, action, resource, resourceID, status, details string) {
	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("caller_id", callerID),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", middleware.GetRequestID(ctx)),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogImpersonation(ctx context.Context, callerID, targetUserID, status string) {
	al.LogAction(ctx, callerID, "impersonate", "auth_user", targetUserID, status, "")
}

func (al *Logger) LogPasswordReset(ctx context.Context, callerID, targetAuthID, status string) {
	al.LogAction(ctx, callerID, "reset_password", "auth_user", targetAuthID, status, "")
}

func (al *Logger) LogEmployeeDeletion(ctx context.Context, callerID, userID, status, details string) {
	al.LogAction(ctx, callerID, "delete", "employee", userID, status, details)
}

func (al *Logger) LogDenied(ctx context.Context, callerID, reason string) {
	al.LogAction(ctx, callerID, "access_denied", "api", "", "denied", reason)
}
