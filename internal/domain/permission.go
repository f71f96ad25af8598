package domain

import "fmt"

// Role is the caller's role as asserted by the identity provider.
type Role string

const (
	// RoleAdmin is college staff.
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Principal is the authenticated caller.
type Principal struct {
	Subject string
	Role    Role
}

// Operation names a capability-checked entry point.
type Operation string

const (
	OpManageCatalog    Operation = "manage_catalog"
	OpMarkAttendance   Operation = "mark_attendance"
	OpSubmitFeedback   Operation = "submit_feedback"
	OpRegisterForEvent Operation = "register_for_event"
	OpRead             Operation = "read"
)

var capabilities = map[Operation][]Role{
	OpManageCatalog:    {RoleAdmin},
	OpMarkAttendance:   {RoleAdmin},
	OpSubmitFeedback:   {RoleStudent},
	OpRegisterForEvent: {RoleAdmin, RoleStudent},
	OpRead:             {RoleAdmin, RoleStudent},
}

// Authorize returns nil if role may perform op, or an error wrapping ErrForbidden.
// Unknown operations are denied.
func Authorize(op Operation, role Role) error {
	for _, r := range capabilities[op] {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not %s", ErrForbidden, role, op)
}

// TokenVerifier verifies a bearer token issued by the identity provider.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// TokenIssuer issues tokens understood by TokenVerifier. Used for local development.
type TokenIssuer interface {
	Issue(subject string, role Role) (string, error)
}
