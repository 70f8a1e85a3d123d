package request

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrEndpointIsNotConstructed is returned when an Endpoint was not created through NewEndpoint.
var ErrEndpointIsNotConstructed = errs.NewValueIsRequiredError("endpoint must be created via NewEndpoint constructor")

// Endpoint is one end of a delivery: where the parcel is picked up or dropped off,
// together with the person to contact there. Immutable once created.
type Endpoint struct {
	address      string
	location     kernel.Location
	contactName  string
	contactPhone string
	guard        guard.ConstructorGuard
}

// NewEndpoint validates and creates an Endpoint.
// Address, contact name and contact phone are required (blank strings are rejected)
// and the location must be a constructed kernel.Location.
//
// The kind argument ("pickup" or "dropoff") prefixes parameter names in errors so
// that callers can tell which endpoint failed.
func NewEndpoint(kind, address string, location kernel.Location, contactName, contactPhone string) (Endpoint, error) {
	e := Endpoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setAddress(kind, address),
		e.setLocation(location),
		e.setContactName(kind, contactName),
		e.setContactPhone(kind, contactPhone),
	); err != nil {
		return Endpoint{}, err
	}

	return e, nil
}

// Validate ensures the endpoint was created through NewEndpoint.
func (e Endpoint) Validate() error {
	return e.guard.Validate(ErrEndpointIsNotConstructed)
}

func (e Endpoint) Address() string { return e.address }

func (e Endpoint) Location() kernel.Location { return e.location }

func (e Endpoint) ContactName() string { return e.contactName }

func (e Endpoint) ContactPhone() string { return e.contactPhone }

func (e *Endpoint) setAddress(kind, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError(kind + " address")
	}
	e.address = address
	return nil
}

func (e *Endpoint) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	e.location = location
	return nil
}

func (e *Endpoint) setContactName(kind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError(kind + " contact name")
	}
	e.contactName = name
	return nil
}

func (e *Endpoint) setContactPhone(kind, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError(kind + " contact phone")
	}
	e.contactPhone = phone
	return nil
}
