package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LeagueCodes is the fixed set of supported league codes, matching the
// results archive's naming.
var LeagueCodes = []string{"E0", "E1", "SP1", "D1", "I1", "F1"}

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)
	v.RegisterValidation("leaguecode", validateLeagueCode)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateWeightOverrides(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateLeagueCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	for _, known := range LeagueCodes {
		if code == known {
			return true
		}
	}
	return false
}

// validateWeightOverrides rejects overrides for unknown factors or
// weights outside [0,1]. Whether the full set still sums to 1.0 is
// checked by the scoring engine at construction.
func validateWeightOverrides(cfg *Config) error {
	for name, w := range cfg.Scoring.WeightOverrides {
		if w < 0 || w > 1 {
			return fmt.Errorf("scoring.weight_overrides.%s: weight %f outside [0,1]", name, w)
		}
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
