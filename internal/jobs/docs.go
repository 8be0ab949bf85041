// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// AutoBatchJob runs at the top of every minute and executes the bulk
// batching policy, turning any ready delivery orders that are not yet part
// of a delivery run into new runs. Immediate batching on the ready
// transition handles the common case; this job is the sweep that catches
// orders whose peers became ready later.
//
// Jobs are managed through JobManager, which starts and stops them as a
// unit.
package jobs
