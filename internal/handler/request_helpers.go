package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/PixelPet_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written and the handler should return.
//
//	var req ConnectRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Connect"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	return validateRequest(r, w, req, actionName)
}

func validateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	if err := ValidateStruct(req); err != nil {
		logger.FromContext(r.Context()).Info(LogMsgValidationFailed, "action", actionName, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fieldMessages(err),
		})
		return err
	}
	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam returns the query parameter or defaultValue when it is missing
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
