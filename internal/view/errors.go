package view

import "errors"

// ValidationError reports a draft that failed client-side checks. Its
// message is user-visible; store and recipe failures are wrapped plain
// errors instead.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
