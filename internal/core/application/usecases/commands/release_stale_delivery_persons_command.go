package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrReleaseStaleDeliveryPersonsCommandIsNotConstructed = errors.New(
		"ReleaseStaleDeliveryPersonsCommand must be created via NewReleaseStaleDeliveryPersonsCommand constructor",
	)
)

// ReleaseStaleDeliveryPersonsCommand marks available delivery persons that
// stopped reporting their position as unavailable.
type ReleaseStaleDeliveryPersonsCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration
	now    time.Time

	guard guard.ConstructorGuard
}

// NewReleaseStaleDeliveryPersonsCommand creates a sweep command evaluated at now.
func NewReleaseStaleDeliveryPersonsCommand(maxAge time.Duration, now time.Time) (ReleaseStaleDeliveryPersonsCommand, error) {
	if maxAge <= 0 {
		return ReleaseStaleDeliveryPersonsCommand{}, errs.NewValueIsOutOfRangeError("max age", maxAge, "0 (exclusive)", "unbounded")
	}

	return ReleaseStaleDeliveryPersonsCommand{
		maxAge: maxAge,
		now:    now,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleDeliveryPersonsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleDeliveryPersonsCommandIsNotConstructed)
}

func (c ReleaseStaleDeliveryPersonsCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c ReleaseStaleDeliveryPersonsCommand) Now() time.Time {
	return c.now
}
