// Package personrepo persists delivery person profiles with GORM.
package personrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"

	"github.com/google/uuid"
)

// DeliveryPersonDTO is the row layout of the delivery_persons table. The
// location columns are all null until the first report.
type DeliveryPersonDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq                 int64     `gorm:"autoIncrement;uniqueIndex"`
	UserID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Vehicle             int       `gorm:"not null"`
	LicensePlate        string
	Available           bool `gorm:"index;not null"`
	LocationLat         *float64
	LocationLng         *float64
	LocationUpdatedAt   *time.Time
	Rating              float64   `gorm:"not null"`
	CompletedDeliveries int       `gorm:"not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime:false;not null"`
}

func (DeliveryPersonDTO) TableName() string {
	return "delivery_persons"
}

func fromDomain(p *person.DeliveryPerson) DeliveryPersonDTO {
	dto := DeliveryPersonDTO{
		ID:                  p.ID().Bytes(),
		UserID:              p.UserID().Bytes(),
		Vehicle:             int(p.Vehicle()),
		LicensePlate:        p.LicensePlate(),
		Available:           p.IsAvailable(),
		LocationUpdatedAt:   p.LocationUpdatedAt(),
		Rating:              p.Rating(),
		CompletedDeliveries: p.CompletedDeliveries(),
		CreatedAt:           p.CreatedAt(),
	}

	if loc := p.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}

	return dto
}

func toDomain(dto DeliveryPersonDTO) (*person.DeliveryPerson, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var loc *kernel.Location
	if dto.LocationLat != nil && dto.LocationLng != nil {
		l, locErr := kernel.NewLocation(*dto.LocationLat, *dto.LocationLng)
		if locErr != nil {
			return nil, locErr
		}
		loc = &l
	}

	return person.RestoreDeliveryPerson(
		id,
		userID,
		person.VehicleType(dto.Vehicle),
		dto.LicensePlate,
		dto.Available,
		loc,
		dto.LocationUpdatedAt,
		dto.Rating,
		dto.CompletedDeliveries,
		dto.CreatedAt,
	)
}
