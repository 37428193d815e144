package api

import "fmt"

// The client distinguishes five failure classes. All of them originate here
// and propagate unmodified up to the application controller, which is the
// sole recovery point. Match with errors.As.

// AuthError reports a rejected login or registration attempt. Message carries
// the backend-provided reason when present, a generic default otherwise.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NotAuthenticatedError reports a mutating operation attempted without a
// current session. No request is issued in that case.
type NotAuthenticatedError struct {
	Operation string
}

func (e *NotAuthenticatedError) Error() string {
	return e.Operation + ": not authenticated"
}

// NetworkError reports a non-2xx HTTP status.
type NetworkError struct {
	Operation  string
	StatusCode int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: http status %d", e.Operation, e.StatusCode)
}

// APIError reports a 2xx response whose body carries success=false.
type APIError struct {
	Operation string
	Message   string
}

func (e *APIError) Error() string {
	return e.Operation + ": " + e.Message
}

// NotFoundError reports a user lookup miss.
type NotFoundError struct {
	UserID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.UserID)
}
