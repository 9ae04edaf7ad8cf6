package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/arknat/hr-backend/internal/service"
)

// CoverageHandler handles the coverage-shift endpoints
type CoverageHandler struct {
	coverageService *service.CoverageService
	logger          *slog.Logger
}

// NewCoverageHandler creates a new coverage handler
func NewCoverageHandler(coverageService *service.CoverageService, logger *slog.Logger) *CoverageHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &CoverageHandler{
		coverageService: coverageService,
		logger:          logger,
	}
}

// AssignGuardRequest represents an assignment request
type AssignGuardRequest struct {
	ApplicantID string `json:"applicant_id"`
	ShiftID     string `json:"shift_id"`
}

// FinalizePaymentRequest represents a payment finalization request
type FinalizePaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

// AssignGuard handles POST /api/coverage/assign-guard
func (h *CoverageHandler) AssignGuard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AssignGuardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode assign request",
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if req.ApplicantID == "" || req.ShiftID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Applicant ID and Shift ID are required."})
		return
	}

	if err := h.coverageService.AssignGuard(r.Context(), req.ApplicantID, req.ShiftID); err != nil {
		h.logger.Error("assign coverage guard failed",
			slog.String("applicant_id", req.ApplicantID),
			slog.String("shift_id", req.ShiftID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Coverage guard assigned successfully."})
}

// FinalizePayment handles POST /api/coverage/finalize-payment
func (h *CoverageHandler) FinalizePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FinalizePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	if req.PaymentID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Payment ID is required."})
		return
	}

	if err := h.coverageService.FinalizePayment(r.Context(), req.PaymentID); err != nil {
		h.logger.Error("finalize payment failed",
			slog.String("payment_id", req.PaymentID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Payment finalized and user archived successfully."})
}
