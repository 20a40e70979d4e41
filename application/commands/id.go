package commands

import (
	"strconv"

	pkgerrors "portfolio/pkg/errors"
)

// ParseID parses a path id. Only plain decimal digits are accepted; signs,
// whitespace and anything else are a validation error, never a not-found.
func ParseID(raw string) (int, error) {
	invalid := pkgerrors.NewValidationError("Invalid ID format")
	if raw == "" {
		return 0, invalid
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, invalid
		}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		// out of range for int
		return 0, invalid
	}
	return id, nil
}
