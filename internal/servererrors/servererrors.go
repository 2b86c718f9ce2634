package servererrors

import "errors"

// Sentinel errors returned by services. Handlers translate these into
// a [ServerError] with the right status code before they reach the
// response writer.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrNoSessionCookie    = errors.New("no session cookie")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrExpiredResetToken  = errors.New("expired reset token")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	ErrAdminNotFound    = errors.New("admin not found")
	ErrEmailNotFound    = errors.New("email not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already in use")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNotEmpty = errors.New("category still has products")
	ErrProductNotFound  = errors.New("product not found")
)

// ServerError carries an HTTP status code alongside the message so a
// handler can decide the response shape once, at the boundary.
type ServerError struct {
	StatusCode int
	message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.message
}
