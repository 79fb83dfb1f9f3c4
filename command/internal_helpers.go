package command

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeIDGen(gen types.IDGenerator) types.IDGenerator {
	if gen != nil {
		return gen
	}
	return types.UUIDGenerator{}
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

// parseUserID reads a client supplied user id. Ids that cannot name a user
// are reported as a missing user.
func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.UserNotFound(raw)
	}
	return id, nil
}

// recordActivity appends an audit entry when a recorder is configured.
func recordActivity(ctx context.Context, recorder types.ActivityRecorder, userID uuid.UUID, action types.Action, details string) error {
	if recorder == nil {
		return nil
	}
	_, err := recorder.Record(ctx, userID, action, details)
	return err
}

func mustGetUser(ctx context.Context, users types.UserRepository, id uuid.UUID) (*types.User, error) {
	if id == uuid.Nil {
		return nil, apperr.UserNotFound(id)
	}
	user, err := users.GetUser(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "user lookup")
	}
	if user == nil {
		return nil, apperr.UserNotFound(id)
	}
	return user, nil
}

func emitActivityHook(ctx context.Context, hooks types.Hooks, entry types.ActivityEntry) {
	if hooks.AfterActivity == nil {
		return
	}
	hooks.AfterActivity(ctx, entry)
}

func emitActivityFailure(ctx context.Context, hooks types.Hooks, failure types.ActivityFailure) {
	if hooks.AfterActivityFailure == nil {
		return
	}
	hooks.AfterActivityFailure(ctx, failure)
}

func emitUserHook(ctx context.Context, hooks types.Hooks, event types.UserEvent) {
	if hooks.AfterUserChange == nil {
		return
	}
	hooks.AfterUserChange(ctx, event)
}

func emitContactHook(ctx context.Context, hooks types.Hooks, event types.ContactEvent) {
	if hooks.AfterContactChange == nil {
		return
	}
	hooks.AfterContactChange(ctx, event)
}

func trimmed(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return strings.TrimSpace(*value), true
}

// validEmail accepts blank input; required checks happen separately.
func validEmail(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || (govalidator.StringLength(raw, "3", "255") && govalidator.IsEmail(raw))
}
