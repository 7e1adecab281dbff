package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps a payload with an optional human-readable message
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

var encodeBuffers = sync.Pool{New: func() any { return new(bytes.Buffer) }}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer encodeBuffers.Put(buf)

	// Headers are not written until the body has encoded
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and user message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := userError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Info(LogMsgServiceError, "operation", op, "error", err)
	}
	respondError(w, status, msg)
}

const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgConnectFirst       = "Please connect your wallet first!"
	ErrMsgCreatePetFirst     = "Please create your pet first!"
	ErrMsgBusyOrUnwell       = "Pet is busy or unwell."
	ErrMsgInvalidInput       = "Invalid input"
	ErrMsgInvalidAction      = "Invalid action"
	ErrMsgNotEnoughCoins     = "Not enough coins!"
	ErrMsgInvestmentRunning  = "An investment is already running"
	ErrMsgNoInvestment       = "No active investment"
	ErrMsgNotMatured         = "Your investment is not ready yet"
	ErrMsgSettlementFailed   = "Failed to claim investment"
	ErrMsgChallengeActive    = "A play challenge is already running"
	ErrMsgChallengeNotActive = "No play challenge is running"
	ErrMsgPetServiceDown     = "The pet service is unavailable. Please try again later."
	ErrMsgPetNotFound        = "Pet not found"
	ErrMsgPetExists          = "You already have a pet"
	ErrMsgPetDead            = "Your pet has passed away"
	ErrMsgNotEnoughEnergy    = "Your pet is too tired"
	ErrMsgAccessoryOwned     = "You already own that accessory"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Rejections before any remote call are 400/409; pet service failures are 502.
// First match wins.
var errorMappings = []errorMapping{
	{domain.ErrNotConnected, http.StatusBadRequest, ErrMsgConnectFirst},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInput},
	{domain.ErrInvalidAction, http.StatusBadRequest, ErrMsgInvalidAction},
	{domain.ErrInsufficientCoins, http.StatusBadRequest, ErrMsgNotEnoughCoins},
	{domain.ErrNoPet, http.StatusConflict, ErrMsgCreatePetFirst},
	{domain.ErrActionInProgress, http.StatusConflict, ErrMsgBusyOrUnwell},
	{domain.ErrPetUnwell, http.StatusConflict, ErrMsgBusyOrUnwell},
	{domain.ErrInvestmentActive, http.StatusConflict, ErrMsgInvestmentRunning},
	{domain.ErrNoActiveInvestment, http.StatusConflict, ErrMsgNoInvestment},
	{domain.ErrInvestmentNotMatured, http.StatusConflict, ErrMsgNotMatured},
	{domain.ErrChallengeActive, http.StatusConflict, ErrMsgChallengeActive},
	{domain.ErrChallengeNotRunning, http.StatusConflict, ErrMsgChallengeNotActive},
	{domain.ErrSettlementFailed, http.StatusBadGateway, ErrMsgSettlementFailed},
	{domain.ErrPetAlreadyExists, http.StatusConflict, ErrMsgPetExists},
	{domain.ErrPetDead, http.StatusConflict, ErrMsgPetDead},
	{domain.ErrNotEnoughEnergy, http.StatusConflict, ErrMsgNotEnoughEnergy},
	{domain.ErrAccessoryOwned, http.StatusConflict, ErrMsgAccessoryOwned},
	{domain.ErrPetNotFound, http.StatusNotFound, ErrMsgPetNotFound},
	{domain.ErrRemoteUnavailable, http.StatusBadGateway, ErrMsgPetServiceDown},
}

// userError maps a service error to a status code and a message the player can act on
func userError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
