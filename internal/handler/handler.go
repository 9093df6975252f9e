// Package handler holds the HTTP handlers for the job board API. Handlers
// validate preconditions, run the filter builder or direct store calls and
// shape the uniform {success, data|message} envelope; everything else is
// left to the central error boundary.
package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/geocode"
	"github.com/techBikashRepo/jobbee-api/internal/storage"
	"github.com/techBikashRepo/jobbee-api/pkg/config"
)

var (
	geocoder       geocode.Geocoder
	resumeStore    storage.ResumeStore
	maxUploadBytes int64
	production     bool
)

// Init wires the handler package's collaborators.
func Init(g geocode.Geocoder, store storage.ResumeStore, cfg *config.Config) {
	geocoder = g
	resumeStore = store
	maxUploadBytes = cfg.Upload.MaxBytes
	production = cfg.Server.IsProduction()
}

// CustomValidator adapts go-playground/validator to Echo's Validator
// interface. Validation failures surface as Validation-kind errors.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); !ok {
		return apperr.Validation("Invalid request data.")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fieldProblem(fe))
	}
	return apperr.Validation("%s", strings.Join(problems, " "))
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func fieldProblem(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please enter %s.", field)
	case "email":
		return "Please enter a valid email address."
	case "max":
		return fmt.Sprintf("Field %s cannot exceed %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("Field %s must be at least %s characters long.", field, fe.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s.", field, fe.Param())
	default:
		return fmt.Sprintf("Invalid value for %s.", field)
	}
}
