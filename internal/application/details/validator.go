package details

import (
	"strconv"
	"strings"
)

// Validator validates movie id input
type Validator struct{}

// NewValidator creates a new movie id validator
func NewValidator() *Validator {
	return &Validator{}
}

// ParsePath extracts the movie id from the last segment of a request path
func (v *Validator) ParsePath(path string) (int64, error) {
	return v.ParseID(LastSegment(path))
}

// ParseID parses a base-10 movie id. Any sign is accepted, there is no
// range check beyond int64.
func (v *Validator) ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &InvalidInputError{Message: ErrNonNumericID, Err: err}
	}

	return id, nil
}

// LastSegment returns the last non-empty "/"-delimited segment of path,
// ignoring trailing slashes. It returns "" when there is none.
func LastSegment(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
