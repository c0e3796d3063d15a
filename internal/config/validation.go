package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the struct tags on cfg and reports every failing field.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		messages := make([]string, 0, len(verrs))
		for _, e := range verrs {
			messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
				e.Namespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return nil
}
