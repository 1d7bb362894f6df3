package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// Struct tags handle field bounds; rules that span sections (e.g. threshold
// ordering against the stream window) are checked explicitly.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	if err := cfg.Thresholds().Validate(); err != nil {
		return fmt.Errorf("io: %w", err)
	}

	if err := cfg.ChunkingDefaults().Validate(); err != nil {
		return fmt.Errorf("chunking: %w", err)
	}

	return nil
}

// formatValidationError converts validator errors into a readable message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		return fmt.Errorf("%s: failed %q validation (value %v)",
			fe.Namespace(), fe.Tag(), fe.Value())
	}
	return err
}
