// Package auth carries the per-request identity and the role gate. It has
// no HTTP or storage dependencies so services and tests can use it directly.
package auth

import (
	"errors"

	"bookstore-api/models"

	"github.com/google/uuid"
)

// Identity is the resolved caller of a request. The zero value is the
// anonymous identity: a missing, malformed, or expired credential resolves
// to it rather than an error.
type Identity struct {
	UserID uuid.UUID
	Role   models.Role
}

// Anonymous reports whether no credential was resolved for this request.
func (i Identity) Anonymous() bool {
	return i.Role == ""
}

var (
	ErrUnauthenticated = errors.New("invalid or missing token")
	ErrForbidden       = errors.New("insufficient role")
)

// RequireRole allows the operation only when the identity carries exactly
// the required role. It never touches persisted state; ownership checks are
// the caller's concern and must report absence, not forbiddenness.
func RequireRole(id Identity, required models.Role) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	if id.Role != required {
		return ErrForbidden
	}
	return nil
}
