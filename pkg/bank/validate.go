package bank

import (
	"fmt"
	"os"
)

// ValidationError represents a validation issue found in a
// bank file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf(
			"conditions[%d].%s: %s", e.Index, e.Field, e.Message,
		)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates a bank file and returns all issues
// found.
func ValidateFile(path string) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{
			Field: "file", Message: err.Error(), Index: -1,
		}}
	}

	file, err := decode(data, path)
	if err != nil {
		return []ValidationError{{
			Field: "format", Message: err.Error(), Index: -1,
		}}
	}

	return Validate(file)
}

// Validate checks a decoded bank file structure.
func Validate(file *File) []ValidationError {
	var errs []ValidationError

	if file.Version == "" {
		errs = append(errs, ValidationError{
			Field: "version", Message: "version is required",
			Index: -1,
		})
	}

	names := make(map[string]bool)
	for i, e := range file.Conditions {
		if e.Kind == "" {
			errs = append(errs, ValidationError{
				Field: "kind", Message: "kind is required",
				Index: i,
			})
		}

		if e.Name == "" {
			errs = append(errs, ValidationError{
				Field: "name", Message: "name is required",
				Index: i,
			})
		} else if names[e.Name] {
			errs = append(errs, ValidationError{
				Field: "name",
				Message: fmt.Sprintf(
					"duplicate name: %s", e.Name,
				),
				Index: i,
			})
		} else {
			names[e.Name] = true
		}

		if e.Handler == "" {
			errs = append(errs, ValidationError{
				Field: "handler", Message: "handler is required",
				Index: i,
			})
		}
	}

	return errs
}
