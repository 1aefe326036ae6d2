package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maksimkurb/cgproxy/src/internal/utils"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "cgroup":
		return "must be an absolute cgroup path matching [a-zA-Z0-9-_./@]"
	case "port":
		return fmt.Sprintf("must be a port number in %d-%d", utils.MinPort, utils.MaxPort)
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string `json:"field"`   // Key, or key.index for list entries (e.g. "cgroup_proxy.1")
	Message   string `json:"message"` // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("cgroup", validateCgroup); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("port", validatePort); err != nil {
		panic(err)
	}

	// Report JSON key names in errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: cgroup path syntax
func validateCgroup(fl validator.FieldLevel) bool {
	return utils.IsValidCgroup(fl.Field().String())
}

// Custom validator: TCP/UDP port range
func validatePort(fl validator.FieldLevel) bool {
	return utils.IsValidPortNumber(fl.Field().Int())
}

// checkVar validates a single value against tag and returns "" when it passes.
func checkVar(value interface{}, tag string) string {
	err := validate.Var(value, tag)
	if err == nil {
		return ""
	}
	var validatorErrs validator.ValidationErrors
	if stderrors.As(err, &validatorErrs) && len(validatorErrs) > 0 {
		return getValidationMessage(validatorErrs[0])
	}
	return err.Error()
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if stderrors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			// Namespace is "Config.cgroup_proxy[1]"; drop the struct name
			fieldPath := e.Namespace()
			if i := strings.IndexByte(fieldPath, '.'); i >= 0 {
				fieldPath = fieldPath[i+1:]
			}
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
