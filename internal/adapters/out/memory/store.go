// Package memory provides an in-process implementation of the marketplace
// store: repositories, unit of work and location index guarded by mutexes.
//
// Records are kept as plain snapshots and every read restores a fresh
// aggregate, so callers never share state with the store or with each other.
package memory

import (
	"sync"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
)

type requestRecord struct {
	id               kernel.UUID
	userID           kernel.UUID
	deliveryPersonID *kernel.UUID
	pickup           request.Endpoint
	dropoff          request.Endpoint
	parcel           request.Parcel
	status           request.Status
	price            float64
	estimatedMinutes int
	createdAt        time.Time
	updatedAt        time.Time
	version          int
}

type personRecord struct {
	id                  kernel.UUID
	userID              kernel.UUID
	vehicle             person.VehicleType
	licensePlate        string
	available           bool
	location            *kernel.Location
	locationUpdatedAt   *time.Time
	rating              float64
	completedDeliveries int
	createdAt           time.Time
}

// Store owns every record. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	requests     map[kernel.UUID]requestRecord
	requestOrder []kernel.UUID

	persons      map[kernel.UUID]personRecord
	personOrder  []kernel.UUID
	personByUser map[kernel.UUID]kernel.UUID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		requests:     make(map[kernel.UUID]requestRecord),
		persons:      make(map[kernel.UUID]personRecord),
		personByUser: make(map[kernel.UUID]kernel.UUID),
	}
}

func requestRecordFrom(r *request.DeliveryRequest) requestRecord {
	return requestRecord{
		id:               r.ID(),
		userID:           r.UserID(),
		deliveryPersonID: r.DeliveryPersonID(),
		pickup:           r.Pickup(),
		dropoff:          r.Dropoff(),
		parcel:           r.Parcel(),
		status:           r.Status(),
		price:            r.Price(),
		estimatedMinutes: r.EstimatedMinutes(),
		createdAt:        r.CreatedAt(),
		updatedAt:        r.UpdatedAt(),
		version:          r.Version(),
	}
}

func (rec requestRecord) restore() (*request.DeliveryRequest, error) {
	return request.RestoreDeliveryRequest(
		rec.id,
		rec.userID,
		rec.deliveryPersonID,
		rec.pickup,
		rec.dropoff,
		rec.parcel,
		rec.status,
		rec.price,
		rec.estimatedMinutes,
		rec.createdAt,
		rec.updatedAt,
		rec.version,
	)
}

func personRecordFrom(p *person.DeliveryPerson) personRecord {
	return personRecord{
		id:                  p.ID(),
		userID:              p.UserID(),
		vehicle:             p.Vehicle(),
		licensePlate:        p.LicensePlate(),
		available:           p.IsAvailable(),
		location:            p.Location(),
		locationUpdatedAt:   p.LocationUpdatedAt(),
		rating:              p.Rating(),
		completedDeliveries: p.CompletedDeliveries(),
		createdAt:           p.CreatedAt(),
	}
}

func (rec personRecord) restore() (*person.DeliveryPerson, error) {
	return person.RestoreDeliveryPerson(
		rec.id,
		rec.userID,
		rec.vehicle,
		rec.licensePlate,
		rec.available,
		rec.location,
		rec.locationUpdatedAt,
		rec.rating,
		rec.completedDeliveries,
		rec.createdAt,
	)
}
