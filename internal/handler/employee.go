package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/arknat/hr-backend/internal/domain"
	"github.com/arknat/hr-backend/internal/service"
)

// EmployeeHandler handles employee lifecycle endpoints
type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

// DeleteEmployeeRequest represents an employee deletion request
type DeleteEmployeeRequest struct {
	UserID     string `json:"user_id"`
	AuthUserID string `json:"auth_user_id"`
}

// UpdatePasswordRequest represents a password update request
type UpdatePasswordRequest struct {
	AuthID      string `json:"auth_id"`
	NewPassword string `json:"new_password"`
}

// CreateEmployeeResponse wraps the created profile
type CreateEmployeeResponse struct {
	Success bool             `json:"success"`
	Data    *domain.Employee `json:"data"`
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params service.CreateEmployeeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.logger.Warn("failed to decode create employee request",
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	employee, err := h.employeeService.Create(r.Context(), params)
	if err != nil {
		h.logger.Error("create employee failed",
			slog.String("id_number", params.IDNumber),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateEmployeeResponse{Success: true, Data: employee})
}

// Delete handles POST /api/employees/delete
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DeleteEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if req.UserID == "" || req.AuthUserID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "User ID and Auth User ID are required."})
		return
	}

	if err := h.employeeService.Delete(r.Context(), req.UserID, req.AuthUserID); err != nil {
		h.logger.Error("delete employee failed",
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully and vacancy status updated."})
}

// UpdatePassword handles POST /api/employees/password
func (h *EmployeeHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.employeeService.UpdatePassword(r.Context(), req.AuthID, req.NewPassword); err != nil {
		h.logger.Error("update employee password failed",
			slog.String("auth_id", req.AuthID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
