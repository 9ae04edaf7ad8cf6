package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/arknat/hr-backend/internal/security/auth"
	"github.com/arknat/hr-backend/internal/service"
)

// AdminHandler handles the system-admin-only endpoints
type AdminHandler struct {
	adminService *service.AdminService
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ImpersonateRequest represents an impersonation request
type ImpersonateRequest struct {
	TargetUserID string `json:"target_user_id"`
}

// ImpersonateResponse carries the issued access token
type ImpersonateResponse struct {
	AccessToken string `json:"access_token"`
}

// ResetPasswordRequest represents an admin password reset request
type ResetPasswordRequest struct {
	AuthID      string `json:"auth_id"`
	NewPassword string `json:"new_password"`
}

// Impersonate handles POST /api/admin/impersonate
func (h *AdminHandler) Impersonate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ImpersonateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if req.TargetUserID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Target User ID is required."})
		return
	}

	callerToken, err := auth.ExtractToken(r.Header.Get("Authorization"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Could not identify the calling user."})
		return
	}

	accessToken, err := h.adminService.Impersonate(r.Context(), callerToken, req.TargetUserID)
	if err != nil {
		h.logger.Warn("impersonation rejected",
			slog.String("target_user_id", req.TargetUserID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ImpersonateResponse{AccessToken: accessToken})
}

// ResetPassword handles POST /api/admin/reset-password
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if req.AuthID == "" || len(req.NewPassword) < 6 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "User ID and a valid password (min 6 chars) are required."})
		return
	}

	callerToken, err := auth.ExtractToken(r.Header.Get("Authorization"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Could not identify the calling user."})
		return
	}

	if err := h.adminService.ResetPassword(r.Context(), callerToken, req.AuthID, req.NewPassword); err != nil {
		h.logger.Warn("admin password reset rejected",
			slog.String("target_auth_id", req.AuthID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}
