package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in activity_logs.
type LogEntry struct {
	bun.BaseModel `bun:"table:activity_logs"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,type:uuid,notnull"`
	Action    string    `bun:"action,notnull"`
	Details   string    `bun:"details"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}
