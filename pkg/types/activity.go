package types

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action is the closed set of audit event kinds.
type Action string

const (
	ActionGet    Action = "GET"
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
)

// Actions lists every supported action in declaration order.
func Actions() []Action {
	return []Action{ActionGet, ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout}
}

// ParseAction matches raw case-insensitively against the supported actions.
// Unknown values are rejected with ErrInvalidAction rather than coerced.
func ParseAction(raw string) (Action, error) {
	candidate := Action(strings.ToUpper(strings.TrimSpace(raw)))
	for _, action := range Actions() {
		if candidate == action {
			return action, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, raw)
}

// String implements fmt.Stringer.
func (a Action) String() string { return string(a) }

// ActivityEntry is one immutable audit record.
type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityFilter narrows activity lookups. Zero values mean "no constraint".
type ActivityFilter struct {
	UserID  uuid.UUID
	Actions []Action
}

// ActivityStats summarizes entries by action kind. TotalLogs always equals the
// sum of the six per-kind counters.
type ActivityStats struct {
	GetCount    int `json:"getCount"`
	CreateCount int `json:"createCount"`
	UpdateCount int `json:"updateCount"`
	DeleteCount int `json:"deleteCount"`
	LoginCount  int `json:"loginCount"`
	LogoutCount int `json:"logoutCount"`
	TotalLogs   int `json:"totalLogs"`
}

// Add increments the counter for action by n and keeps TotalLogs in sync.
func (s *ActivityStats) Add(action Action, n int) {
	switch action {
	case ActionGet:
		s.GetCount += n
	case ActionCreate:
		s.CreateCount += n
	case ActionUpdate:
		s.UpdateCount += n
	case ActionDelete:
		s.DeleteCount += n
	case ActionLogin:
		s.LoginCount += n
	case ActionLogout:
		s.LogoutCount += n
	default:
		return
	}
	s.TotalLogs += n
}

// ActivitySink is the minimal contract for appending audit entries.
type ActivitySink interface {
	Log(ctx context.Context, entry ActivityEntry) (*ActivityEntry, error)
}

// ActivityRepository exposes the read side of the audit trail.
type ActivityRepository interface {
	ActivitySink
	GetActivity(ctx context.Context, id uuid.UUID) (*ActivityEntry, error)
	ListActivity(ctx context.Context, filter ActivityFilter) ([]ActivityEntry, error)
	PageActivity(ctx context.Context, filter ActivityFilter, page PageSpec) (Page[ActivityEntry], error)
	ActivityStats(ctx context.Context, filter ActivityFilter) (ActivityStats, error)
	DeleteActivityByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// ActivityRecorder appends audit entries on behalf of other workflows. The
// user is resolved and the action validated before anything is stored.
type ActivityRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, action Action, details string) (*ActivityEntry, error)
}

// Reasons reported through Hooks.AfterActivityFailure.
const (
	FailureUserNotFound  = "user_not_found"
	FailureInvalidAction = "invalid_action"
	FailureStorage       = "storage"
)
