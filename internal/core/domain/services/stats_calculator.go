package services

import (
	"time"

	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
)

// Stats is the admin dashboard snapshot.
type Stats struct {
	TotalRequests    int
	ByStatus         map[request.Status]int
	CreatedInWindow  int
	CompletionRate   float64
	DeliveredRevenue float64
	TotalPersons     int
	AvailablePersons int
	AverageRating    float64
}

// StatsCalculator aggregates requests and delivery persons into Stats.
//
// Business rules:
//   - CompletionRate is delivered / (delivered + cancelled), 0 when nothing finished
//   - DeliveredRevenue sums the price of delivered requests only
//   - AverageRating ignores profiles that have not been rated yet (rating 0)
//   - CreatedInWindow counts requests created in [from, to)
type StatsCalculator struct{}

// NewStatsCalculator creates a new StatsCalculator instance.
func NewStatsCalculator() StatsCalculator {
	return StatsCalculator{}
}

// Calculate builds the snapshot. Invalid aggregates are skipped.
func (c StatsCalculator) Calculate(
	requests []*request.DeliveryRequest,
	persons []*person.DeliveryPerson,
	from, to time.Time,
) Stats {
	stats := Stats{
		ByStatus: make(map[request.Status]int, len(request.AllStatuses())),
	}
	for _, s := range request.AllStatuses() {
		stats.ByStatus[s] = 0
	}

	for _, r := range requests {
		if r.Validate() != nil {
			continue
		}

		stats.TotalRequests++
		stats.ByStatus[r.Status()]++

		created := r.CreatedAt()
		if !created.Before(from) && created.Before(to) {
			stats.CreatedInWindow++
		}

		if r.Status() == request.StatusDelivered {
			stats.DeliveredRevenue += r.Price()
		}
	}

	delivered := stats.ByStatus[request.StatusDelivered]
	if finished := delivered + stats.ByStatus[request.StatusCancelled]; finished > 0 {
		stats.CompletionRate = float64(delivered) / float64(finished)
	}

	var (
		ratingSum float64
		rated     int
	)
	for _, p := range persons {
		if p.Validate() != nil {
			continue
		}

		stats.TotalPersons++
		if p.IsAvailable() {
			stats.AvailablePersons++
		}
		if p.Rating() > 0 {
			ratingSum += p.Rating()
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}

	return stats
}
