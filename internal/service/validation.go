package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/startupathon-api/internal/repository"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	appErr := appErrors.WithFields(appErrors.ErrValidation, message, fields...)
	appErr.Err = err
	return appErr
}

// blankFields returns the names of the supplied values that are present but empty.
// Mandatory text fields may be omitted from an update but never cleared.
func blankFields(names []string, values ...*string) []string {
	var blank []string
	for i, v := range values {
		if v != nil && *v == "" {
			blank = append(blank, names[i])
		}
	}
	return blank
}

// internalError wraps an unexpected failure; store connectivity failures surface as StoreUnavailable.
func internalError(err error, message string) error {
	if repository.IsUnavailable(err) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
