package actor

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Role determines both which requests an actor sees and which lifecycle
// transitions the actor may trigger. Roles are fixed after registration.
type Role int

const (
	// RoleUnknown is the zero value and is never valid.
	RoleUnknown Role = iota
	// RoleUser creates delivery requests and may cancel its own.
	RoleUser
	// RoleDelivery accepts requests from the pool and drives them to delivery.
	RoleDelivery
	// RoleAdmin sees everything and may cancel any open request.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleUser:     "user",
		RoleDelivery: "delivery",
		RoleAdmin:    "admin",
	}
}

// ParseRole converts the wire name ("user", "delivery", "admin") to a Role.
// Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == normalized {
			return role, nil
		}
	}

	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate checks that the role is one of the three known roles.
func (r Role) Validate() error {
	if r != RoleUser && r != RoleDelivery && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
