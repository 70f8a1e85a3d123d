package actor

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor constructor")

// Actor is the identity and role performing an operation. Actors are supplied
// by the authentication provider and trusted as-is; the core never looks them
// up or verifies them independently.
type Actor struct {
	id    kernel.UUID
	role  Role
	name  string
	email string
	phone string
	guard guard.ConstructorGuard
}

// NewActor builds an Actor from authenticated claims. Only the id and role are
// required; contact details are carried for display and notification purposes.
//
// Example:
//
//	a, err := actor.NewActor(kernel.NewUUID(), actor.RoleDelivery, "María García", "", "+34 600 789 012")
func NewActor(id kernel.UUID, role Role, name, email, phone string) (Actor, error) {
	a := Actor{
		guard: guard.NewConstructorGuard(),
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
	}

	if err := errors.Join(a.setID(id), a.setRole(role)); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// Validate ensures the actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID { return a.id }

func (a Actor) Role() Role { return a.role }

func (a Actor) Name() string { return a.name }

func (a Actor) Email() string { return a.email }

func (a Actor) Phone() string { return a.phone }

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool { return a.role == RoleAdmin }

// IsDelivery reports whether the actor has the delivery role.
func (a Actor) IsDelivery() bool { return a.role == RoleDelivery }

// IsUser reports whether the actor has the end-user role.
func (a Actor) IsUser() bool { return a.role == RoleUser }

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
