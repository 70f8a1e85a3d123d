package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies requests, delivery persons and users. The zero value is
// not a usable id; build one with NewUUID or parse it with UUIDFromString.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random v4 id.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses ids coming from path parameters, token subjects and
// event payloads. Braced, urn:uuid: and hyphen-less forms are accepted.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes reads the 16-byte form scanned from postgres uuid columns.
// The nil id is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the google/uuid value used by gorm columns.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero id.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// MarshalText writes the canonical hyphenated form, used in JSON payloads.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

func (u *UUID) UnmarshalText(data []byte) error {
	parsed, err := UUIDFromString(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
