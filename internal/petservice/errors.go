package petservice

import (
	"errors"
	"net/http"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

// ErrorResponse is the JSON body of every gateway error
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorMapping struct {
	err    error
	code   string
	status int
}

// errorMappings is checked in order; the first errors.Is match wins
var errorMappings = []errorMapping{
	{domain.ErrPetNotFound, CodePetNotFound, http.StatusNotFound},
	{domain.ErrPetAlreadyExists, CodePetAlreadyExists, http.StatusConflict},
	{domain.ErrPetDead, CodePetDead, http.StatusGone},
	{domain.ErrNotEnoughEnergy, CodeNotEnoughEnergy, http.StatusUnprocessableEntity},
	{domain.ErrAccessoryOwned, CodeAccessoryOwned, http.StatusConflict},
	{domain.ErrInsufficientCoins, CodeInsufficientCoins, http.StatusPaymentRequired},
	{domain.ErrInvalidAction, CodeInvalidAction, http.StatusBadRequest},
	{domain.ErrInvalidInput, CodeInvalidInput, http.StatusBadRequest},
}

// codeForError maps a domain error to its wire code and HTTP status
func codeForError(err error) (string, int) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.code, m.status
		}
	}
	return CodeInternal, http.StatusInternalServerError
}

// errorForCode maps a wire code back to its sentinel error, or nil if unknown
func errorForCode(code string) error {
	for _, m := range errorMappings {
		if m.code == code {
			return m.err
		}
	}
	return nil
}
