package request

import (
	"fmt"
	"math"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not created through NewParcel.
var ErrParcelIsNotConstructed = errs.NewValueIsRequiredError("parcel must be created via NewParcel constructor")

// Parcel describes what is being shipped.
type Parcel struct {
	description         string
	declaredValue       *float64
	specialInstructions string
	guard               guard.ConstructorGuard
}

// NewParcel validates and creates a Parcel. The description is required; the
// declared value is optional but, when given, must be a finite number >= 0.
func NewParcel(description string, declaredValue *float64, specialInstructions string) (Parcel, error) {
	p := Parcel{
		guard:               guard.NewConstructorGuard(),
		specialInstructions: strings.TrimSpace(specialInstructions),
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return Parcel{}, errs.NewValueIsRequiredError("package description")
	}
	p.description = description

	if declaredValue != nil {
		v := *declaredValue
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Parcel{}, errs.NewValueIsInvalidErrorWithCause(
				"package value",
				fmt.Errorf("%v is negative or not a number", v),
			)
		}
		p.declaredValue = &v
	}

	return p, nil
}

// Validate ensures the parcel was created through NewParcel.
func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p Parcel) Description() string { return p.description }

// DeclaredValue returns a copy of the declared value, or nil when none was given.
func (p Parcel) DeclaredValue() *float64 {
	if p.declaredValue == nil {
		return nil
	}
	v := *p.declaredValue
	return &v
}

func (p Parcel) SpecialInstructions() string { return p.specialInstructions }
