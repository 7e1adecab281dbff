package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/investment"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// InvestmentHandler serves the investment mini-game
type InvestmentHandler struct {
	service game.Service
}

// NewInvestmentHandler creates an InvestmentHandler
func NewInvestmentHandler(service game.Service) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// StartInvestmentRequest escrows coins for a number of hours
type StartInvestmentRequest struct {
	Amount        int64 `json:"amount" validate:"required,gt=0"`
	DurationHours int   `json:"durationHours" validate:"required,gt=0,lte=168"`
}

// ClaimResponse carries the resolved payout, with an error when the pet service refused the delta
type ClaimResponse struct {
	*game.ClaimResult
	Error string `json:"error,omitempty"`
}

// HandleGetInvestment returns the active investment's progress, or 204 when none is active
func (h *InvestmentHandler) HandleGetInvestment(w http.ResponseWriter, r *http.Request) {
	status := h.service.InvestmentStatus()
	if status == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// HandleGetOptions lists the preset investments
func (h *InvestmentHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, investment.Options)
}

// HandleStartInvestment escrows coins locally
func (h *InvestmentHandler) HandleStartInvestment(w http.ResponseWriter, r *http.Request) {
	var req StartInvestmentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start investment"); err != nil {
		return
	}

	inv, err := h.service.StartInvestment(r.Context(), req.Amount, req.DurationHours)
	if err != nil {
		respondServiceError(w, r, "Start investment", err)
		return
	}
	respondJSON(w, http.StatusCreated, investment.StatusAt(inv, inv.StartTime))
}

// HandleClaimInvestment resolves and settles the payout. A settlement failure answers 502 with the
// resolved outcome, since the investment is cleared either way.
func (h *InvestmentHandler) HandleClaimInvestment(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ClaimInvestment(r.Context())
	if err != nil {
		if result != nil && errors.Is(err, domain.ErrSettlementFailed) {
			status, msg := userError(err)
			logger.FromContext(r.Context()).Error(LogMsgServiceError, "operation", "Claim investment", "error", err)
			respondJSON(w, status, ClaimResponse{ClaimResult: result, Error: msg})
			return
		}
		respondServiceError(w, r, "Claim investment", err)
		return
	}
	respondJSON(w, http.StatusOK, ClaimResponse{ClaimResult: result})
}
