package requestrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRequestRepository implements ports.DeliveryRequestRepository using GORM.
type GormDeliveryRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRequestRepository creates a new GORM delivery request repository.
func NewGormDeliveryRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRequestRepository {
	return &GormDeliveryRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new request with version 1.
func (r *GormDeliveryRequestRepository) Add(ctx context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("delivery request", aggregate.ID().String())
		}
		return err
	}

	aggregate.SetVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns if the stored version still matches the
// aggregate's, then bumps the version.
func (r *GormDeliveryRequestRepository) Update(ctx context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := dto.Version + 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryRequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"delivery_person_id": dto.DeliveryPersonID,
			"status":             dto.Status,
			"updated_at":         dto.UpdatedAt,
			"version":            next,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DeliveryRequestDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("delivery request", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("delivery request " + aggregate.ID().String())
	}

	aggregate.SetVersion(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request by ID.
func (r *GormDeliveryRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns every request in insertion order.
func (r *GormDeliveryRequestRepository) List(ctx context.Context) ([]*request.DeliveryRequest, error) {
	var dtos []DeliveryRequestDTO
	if err := r.db.WithContext(ctx).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*request.DeliveryRequest, 0, len(dtos))
	for _, dto := range dtos {
		restored, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, restored)
	}

	return requests, nil
}
