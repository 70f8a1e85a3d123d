package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetAdminStatsQueryIsNotConstructed = errors.New(
		"GetAdminStatsQuery must be created via NewGetAdminStatsQuery constructor",
	)
)

// GetAdminStatsQuery builds the admin dashboard for the day containing now.
type GetAdminStatsQuery struct { //nolint:recvcheck //using for validation
	actor actor.Actor
	now   time.Time

	guard guard.ConstructorGuard
}

// NewGetAdminStatsQuery creates the query. The "today" window is computed in
// now's location.
func NewGetAdminStatsQuery(a actor.Actor, now time.Time) (GetAdminStatsQuery, error) {
	if err := a.Validate(); err != nil {
		return GetAdminStatsQuery{}, err
	}

	return GetAdminStatsQuery{actor: a, now: now, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAdminStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetAdminStatsQueryIsNotConstructed)
}

func (q GetAdminStatsQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetAdminStatsQuery) Now() time.Time {
	return q.now
}

// GetAdminStatsQueryResponse is the dashboard read model. ByStatus is keyed by
// the status wire name and lists every status, including empty ones.
type GetAdminStatsQueryResponse struct {
	TotalRequests    int            `json:"total_requests"`
	ByStatus         map[string]int `json:"by_status"`
	CreatedToday     int            `json:"created_today"`
	CompletionRate   float64        `json:"completion_rate"`
	DeliveredRevenue float64        `json:"delivered_revenue"`
	TotalPersons     int            `json:"total_delivery_persons"`
	AvailablePersons int            `json:"available_delivery_persons"`
	AverageRating    float64        `json:"average_rating"`
	WindowStart      time.Time      `json:"window_start"`
	WindowEnd        time.Time      `json:"window_end"`
}
