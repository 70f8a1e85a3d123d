// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and
// are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(&releaseStaleHandler, "0 * * * * *", 5*time.Minute, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StaleLocationJob marks available delivery persons offline once their last
// location report is older than the configured age and drops them from the
// location index, so nearby searches only return people who are still
// reporting.
//
// # Error Handling
//
// A failed sweep is logged and the next tick runs as usual. A schedule that
// does not parse makes StartAll fail.
package jobs
