// Package postgres provides the GORM-based Unit of Work over the delivery
// request and delivery person tables.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// run inside the transaction once Begin was called and against the plain
// connection otherwise, which is how read-only callers use them.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.DeliveryRequestRepository().Update(ctx, r); err != nil {
//	    return err
//	}
//
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	events := uow.CollectEvents()
//
// Each UnitOfWork instance belongs to a single goroutine.
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/personrepo"
	"marketplace/internal/adapters/out/postgres/requestrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and remembers the aggregates
// written through its repositories so their events can be published after commit.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction when
// no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction and forgets tracked aggregates, so no
// events of rolled-back writes are ever published.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) DeliveryRequestRepository() ports.DeliveryRequestRepository {
	return requestrepo.NewGormDeliveryRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliveryPersonRepository() ports.DeliveryPersonRepository {
	return personrepo.NewGormDeliveryPersonRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// CollectEvents drains the pending events of tracked delivery requests in
// write order. A second call returns nothing.
func (uow *GormUnitOfWork) CollectEvents() []request.Event {
	events := make([]request.Event, 0)
	for _, tracked := range uow.trackedAggregates {
		r, ok := tracked.Aggregate.(*request.DeliveryRequest)
		if !ok {
			continue
		}
		events = append(events, r.DomainEvents()...)
		r.ClearDomainEvents()
	}
	return events
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
