// Package activity provides the Bun persistence layer for the audit trail. The
// Repository implements both the append-only ActivitySink and the
// ActivityRepository read-side contract (lookups, pages, per-action stats).
// Host applications can swap the repository for a different storage engine.
package activity
