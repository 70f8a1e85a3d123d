package personrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryPersonRepository implements ports.DeliveryPersonRepository using GORM.
type GormDeliveryPersonRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryPersonRepository creates a new GORM delivery person repository.
func NewGormDeliveryPersonRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryPersonRepository {
	return &GormDeliveryPersonRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a profile. The unique index on user_id enforces one profile per user.
func (r *GormDeliveryPersonRepository) Add(ctx context.Context, aggregate *person.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("delivery person for user", aggregate.UserID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable profile columns. Location columns belong to UpdateLocation.
func (r *GormDeliveryPersonRepository) Update(ctx context.Context, aggregate *person.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryPersonDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"vehicle":              dto.Vehicle,
			"license_plate":        dto.LicensePlate,
			"available":            dto.Available,
			"rating":               dto.Rating,
			"completed_deliveries": dto.CompletedDeliveries,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery person", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a profile by ID.
func (r *GormDeliveryPersonRepository) Get(ctx context.Context, id kernel.UUID) (*person.DeliveryPerson, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPersonDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery person", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUserID retrieves the profile owned by userID.
func (r *GormDeliveryPersonRepository) GetByUserID(
	ctx context.Context,
	userID kernel.UUID,
) (*person.DeliveryPerson, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPersonDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery person for user", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns profiles in registration order.
func (r *GormDeliveryPersonRepository) List(ctx context.Context, availableOnly bool) ([]*person.DeliveryPerson, error) {
	query := r.db.WithContext(ctx).Order("seq")
	if availableOnly {
		query = query.Where("available = ?", true)
	}

	var dtos []DeliveryPersonDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	persons := make([]*person.DeliveryPerson, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}

	return persons, nil
}

// UpdateLocation writes only the location columns. Unknown ids report false.
func (r *GormDeliveryPersonRepository) UpdateLocation(
	ctx context.Context,
	id kernel.UUID,
	location kernel.Location,
	at time.Time,
) (bool, error) {
	if err := location.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryPersonDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"location_lat":        location.Lat(),
			"location_lng":        location.Lng(),
			"location_updated_at": at.UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// ReleaseStale flips available off with a guarded UPDATE, so a location report
// committed after the sweep loaded the profile wins.
func (r *GormDeliveryPersonRepository) ReleaseStale(
	ctx context.Context,
	id kernel.UUID,
	lastReport *time.Time,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	query := r.db.WithContext(ctx).
		Model(&DeliveryPersonDTO{}).
		Where("id = ? AND available = ?", id.Bytes(), true)
	if lastReport == nil {
		query = query.Where("location_updated_at IS NULL")
	} else {
		query = query.Where("location_updated_at = ?", lastReport.UTC())
	}

	result := query.Update("available", false)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
