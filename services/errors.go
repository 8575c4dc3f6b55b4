package services

import (
	"errors"
	"net/http"

	"bookstore-api/auth"
	"bookstore-api/models"
)

// ServiceError is a typed error with an HTTP status code. Detail carries
// the underlying cause verbatim and is only populated for internal faults;
// deliberate business rejections never leak internals.
type ServiceError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *ServiceError) Error() string { return e.Message }

func internalError(message string, err error) *ServiceError {
	return &ServiceError{StatusCode: 500, Message: message, Detail: err.Error()}
}

// requireRole runs the authorization gate and maps rejections to the wire
// contract. Wrong role and missing identity both surface as 401; ownership
// failures are reported by the individual services as 404 instead, so a
// caller cannot distinguish another user's resource from a missing one.
func requireRole(id auth.Identity, required models.Role) *ServiceError {
	switch err := auth.RequireRole(id, required); {
	case errors.Is(err, auth.ErrUnauthenticated):
		return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid or missing token."}
	case errors.Is(err, auth.ErrForbidden):
		return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "You do not have permission to use this resource."}
	}
	return nil
}
