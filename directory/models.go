package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the users row. ContactCount is derived at read time.
type Record struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            uuid.UUID  `bun:",pk,type:uuid"`
	Username      string     `bun:"username,notnull"`
	Email         string     `bun:"email,notnull"`
	PasswordHash  string     `bun:"password_hash,notnull"`
	Name          string     `bun:"name,notnull"`
	Role          string     `bun:"role,notnull"`
	Status        string     `bun:"status,notnull"`
	CreatedAt     time.Time  `bun:"created_at,notnull"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull"`
	DeactivatedAt *time.Time `bun:"deactivated_at,nullzero"`
	DeactivatedBy uuid.UUID  `bun:"deactivated_by,type:uuid,nullzero"`
	ContactCount  int        `bun:"contact_count,scanonly"`
}
