package details

import "errors"

// ErrNonNumericID is the message returned to clients for a bad movie id
const ErrNonNumericID = "please provide numeric movie id"

// InvalidInputError reports a request that cannot be served as sent
type InvalidInputError struct {
	Message string
	Err     error
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err is, or wraps, an *InvalidInputError
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
