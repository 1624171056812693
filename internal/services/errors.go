package services

import "errors"

// Error classes the handlers map to HTTP statuses. Validation failures block
// the operation before any network call; authentication failures redirect
// the UI to the login screen.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not logged in")
)
