// Package services holds the application services of the admin console:
// authentication and the persisted session, per-kind record services that
// orchestrate uploads, validation, mutation and cache invalidation, the
// dashboard summary and CSV export.
package services
