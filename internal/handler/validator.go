package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

const (
	tagAction  = "action"
	tagPetName = "petname"
)

var requestValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(tagAction, validateAction)
	_ = v.RegisterValidation(tagPetName, validatePetName)
	return v
})

// ValidateStruct checks s against its validate tags
func ValidateStruct(s any) error {
	return requestValidator().Struct(s)
}

// fieldMessages turns validation failures into per-field messages keyed by JSON name.
// Errors that are not validation failures collapse into a single "error" entry.
func fieldMessages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return map[string]string{"error": ErrMsgInvalidRequest}
	}

	out := make(map[string]string, len(failures))
	for _, f := range failures {
		out[f.Field()] = describeFailure(f)
	}
	return out
}

func describeFailure(f validator.FieldError) string {
	switch f.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + f.Param()
	case "max":
		return "must be at most " + f.Param() + " characters"
	case "lte":
		return "must be at most " + f.Param()
	case "excludesall":
		return "contains invalid characters"
	case tagAction:
		return "is not a care action"
	case tagPetName:
		return "must contain a visible character"
	default:
		return "is invalid"
	}
}

// validateAction accepts the care actions that can be sent directly. Play goes through the challenge.
func validateAction(fl validator.FieldLevel) bool {
	kind, err := domain.ParseActionKind(fl.Field().String())
	return err == nil && kind != domain.ActionPlay
}

func validatePetName(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), func(r rune) bool {
		return !unicode.IsSpace(r) && unicode.IsPrint(r)
	}) >= 0
}
