// Package query exposes go-command Querier implementations for the read side:
// audit trail lookups, pages and stats, user lookups and contact listings.
// Reads that name a caller are themselves recorded as GET entries when an
// ActivityRecorder is configured.
package query
