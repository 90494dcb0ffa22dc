package validators

import (
	"errors"
	"strings"
)

// RequiredField pairs a request field name with its trimmed value for
// the presence check
type RequiredField struct {
	Name  string
	Value string
}

// RequiredFields checks that every field is present and non-empty
// (whitespace counts as empty)
func RequiredFields(fields ...RequiredField) error {
	var missing []string

	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}

	if len(missing) > 0 {
		return MissingFieldsError(missing)
	}

	return nil
}

// MissingFieldsError builds the documented envelope message for
// missing fields, in their declared order:
// "Required field(s) name, email is missing or empty"
func MissingFieldsError(missing []string) error {
	return errors.New("Required field(s) " + strings.Join(missing, ", ") + " is missing or empty")
}
