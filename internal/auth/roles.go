package auth

import "errors"

var (
	// ErrUnauthenticated means the request carried no usable token.
	// Maps to 401: the caller should log in.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the token was valid but the role claim does
	// not satisfy the operation's capability. Maps to 403. Never
	// collapsed with ErrUnauthenticated.
	ErrForbidden = errors.New("insufficient role")
)

// Capability names the authorization requirement of an operation.
type Capability string

const (
	AdminOnly         Capability = "admin-only"
	WriterOnly        Capability = "writer-only"
	AuthenticatedOnly Capability = "authenticated-only"
)

// Require is the role gate: a pure predicate over a verified claim.
// nil claims means the request never authenticated.
func Require(claims *Claims, capability Capability) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	switch capability {
	case AdminOnly:
		if claims.Role != RoleAdmin {
			return ErrForbidden
		}
	case WriterOnly:
		if claims.Role != RoleWriter {
			return ErrForbidden
		}
	case AuthenticatedOnly:
		// any verified claim passes
	default:
		return ErrForbidden
	}
	return nil
}
