// Package guard provides ConstructorGuard, a marker embedded in value objects,
// aggregates, commands and queries to tell constructor-built instances apart
// from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was built by its constructor.
//
// Example:
//
//	type AcceptDeliveryCommand struct {
//	    requestID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c AcceptDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
