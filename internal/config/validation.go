package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
)

var validate = validator.New()

// Validate checks the configuration using struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return cerrors.NewConfigError("invalid configuration", formatValidationError(err))
	}
	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
