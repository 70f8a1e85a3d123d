// Package requestrepo persists delivery requests with GORM. Rows carry a
// version column used for optimistic concurrency on every status change.
package requestrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// DeliveryRequestDTO is the row layout of the delivery_requests table.
// Seq is a database sequence that keeps listing in insertion order.
type DeliveryRequestDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Seq              int64       `gorm:"autoIncrement;uniqueIndex"`
	UserID           uuid.UUID   `gorm:"type:uuid;index;not null"`
	DeliveryPersonID *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup           EndpointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff          EndpointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Parcel           ParcelDTO   `gorm:"embedded;embeddedPrefix:parcel_"`
	Status           int         `gorm:"index;not null"`
	Price            float64     `gorm:"type:numeric(10,2);not null"`
	EstimatedMinutes int
	CreatedAt        time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false;not null"`
	Version          int       `gorm:"not null"`
}

func (DeliveryRequestDTO) TableName() string {
	return "delivery_requests"
}

// EndpointDTO is embedded twice, once per endpoint.
type EndpointDTO struct {
	Address      string  `gorm:"not null"`
	Lat          float64 `gorm:"not null"`
	Lng          float64 `gorm:"not null"`
	ContactName  string  `gorm:"not null"`
	ContactPhone string  `gorm:"not null"`
}

type ParcelDTO struct {
	Description         string `gorm:"not null"`
	DeclaredValue       *float64
	SpecialInstructions string
}

func fromDomain(r *request.DeliveryRequest) DeliveryRequestDTO {
	var deliveryPersonID *uuid.UUID
	if id := r.DeliveryPersonID(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	return DeliveryRequestDTO{
		ID:               r.ID().Bytes(),
		UserID:           r.UserID().Bytes(),
		DeliveryPersonID: deliveryPersonID,
		Pickup:           endpointFromDomain(r.Pickup()),
		Dropoff:          endpointFromDomain(r.Dropoff()),
		Parcel: ParcelDTO{
			Description:         r.Parcel().Description(),
			DeclaredValue:       r.Parcel().DeclaredValue(),
			SpecialInstructions: r.Parcel().SpecialInstructions(),
		},
		Status:           int(r.Status()),
		Price:            r.Price(),
		EstimatedMinutes: r.EstimatedMinutes(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
		Version:          r.Version(),
	}
}

func endpointFromDomain(e request.Endpoint) EndpointDTO {
	return EndpointDTO{
		Address:      e.Address(),
		Lat:          e.Location().Lat(),
		Lng:          e.Location().Lng(),
		ContactName:  e.ContactName(),
		ContactPhone: e.ContactPhone(),
	}
}

func toDomain(dto DeliveryRequestDTO) (*request.DeliveryRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		dpID, dpErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if dpErr != nil {
			return nil, dpErr
		}
		deliveryPersonID = &dpID
	}

	pickup, err := endpointToDomain("pickup", dto.Pickup)
	if err != nil {
		return nil, err
	}

	dropoff, err := endpointToDomain("dropoff", dto.Dropoff)
	if err != nil {
		return nil, err
	}

	parcel, err := request.NewParcel(dto.Parcel.Description, dto.Parcel.DeclaredValue, dto.Parcel.SpecialInstructions)
	if err != nil {
		return nil, err
	}

	return request.RestoreDeliveryRequest(
		id,
		userID,
		deliveryPersonID,
		pickup,
		dropoff,
		parcel,
		request.Status(dto.Status),
		dto.Price,
		dto.EstimatedMinutes,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

func endpointToDomain(kind string, dto EndpointDTO) (request.Endpoint, error) {
	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return request.Endpoint{}, err
	}
	return request.NewEndpoint(kind, dto.Address, loc, dto.ContactName, dto.ContactPhone)
}
