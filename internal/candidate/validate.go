package candidate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Letters, spaces and common name punctuation.
var nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

// RegisterValidators registers the candidate form validators on the given validator instance.
func RegisterValidators(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"candidate_name": ValidName,
		"tech_stack":     ValidTechStack,
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	return nil
}

// ValidName reports whether the field contains only name characters.
func ValidName(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	return IsName(val)
}

// IsName reports whether s looks like a person's name.
func IsName(s string) bool {
	return nameRegex.MatchString(strings.TrimSpace(s))
}

// ValidTechStack requires at least one technology once the raw input is split.
func ValidTechStack(fl validator.FieldLevel) bool {
	return len(SplitTechStack(fl.Field().String())) > 0
}
