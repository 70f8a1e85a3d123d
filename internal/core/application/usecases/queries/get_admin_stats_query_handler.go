package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/jinzhu/now"
)

// GetAdminStatsQueryHandler aggregates requests and profiles for admins.
type GetAdminStatsQueryHandler struct {
	requests   RequestReader
	persons    PersonReader
	calculator services.StatsCalculator
}

// NewGetAdminStatsQueryHandler creates the handler.
func NewGetAdminStatsQueryHandler(requests RequestReader, persons PersonReader) GetAdminStatsQueryHandler {
	return GetAdminStatsQueryHandler{
		requests:   requests,
		persons:    persons,
		calculator: services.NewStatsCalculator(),
	}
}

// Handle returns errs.ErrPermissionDenied for anyone but admins.
func (h GetAdminStatsQueryHandler) Handle(
	ctx context.Context,
	query GetAdminStatsQuery,
) (GetAdminStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAdminStatsQueryResponse{}, err
	}

	a := query.Actor()
	if !a.IsAdmin() {
		return GetAdminStatsQueryResponse{}, errs.NewPermissionDeniedError(a.ID().String(), "view statistics")
	}

	requests, err := h.requests.List(ctx)
	if err != nil {
		return GetAdminStatsQueryResponse{}, err
	}

	persons, err := h.persons.List(ctx, false)
	if err != nil {
		return GetAdminStatsQueryResponse{}, err
	}

	day := now.With(query.Now())
	from := day.BeginningOfDay()
	to := day.EndOfDay().Add(time.Nanosecond)

	stats := h.calculator.Calculate(requests, persons, from, to)

	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[status.String()] = count
	}

	return GetAdminStatsQueryResponse{
		TotalRequests:    stats.TotalRequests,
		ByStatus:         byStatus,
		CreatedToday:     stats.CreatedInWindow,
		CompletionRate:   stats.CompletionRate,
		DeliveredRevenue: stats.DeliveredRevenue,
		TotalPersons:     stats.TotalPersons,
		AvailablePersons: stats.AvailablePersons,
		AverageRating:    stats.AverageRating,
		WindowStart:      from,
		WindowEnd:        to,
	}, nil
}
