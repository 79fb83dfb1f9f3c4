package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// ActivityLogInput carries a client supplied audit entry.
type ActivityLogInput struct {
	UserID  string
	Action  string
	Details string
	Result  *types.ActivityEntry
}

// Type implements gocommand.Message.
func (ActivityLogInput) Type() string {
	return "command.activity.log"
}

// Validate implements gocommand.Message. User and action are checked against
// the directory and the action set during Execute.
func (ActivityLogInput) Validate() error {
	return nil
}

// ActivityLogCommand appends entries to the audit trail. It is also the
// types.ActivityRecorder used by every other workflow.
type ActivityLogCommand struct {
	users  types.UserDirectory
	sink   types.ActivitySink
	hooks  types.Hooks
	clock  types.Clock
	idGen  types.IDGenerator
	logger types.Logger
}

// ActivityLogConfig wires dependencies for the log command.
type ActivityLogConfig struct {
	Users  types.UserDirectory
	Sink   types.ActivitySink
	Hooks  types.Hooks
	Clock  types.Clock
	IDGen  types.IDGenerator
	Logger types.Logger
}

// NewActivityLogCommand constructs the logging command handler.
func NewActivityLogCommand(cfg ActivityLogConfig) *ActivityLogCommand {
	return &ActivityLogCommand{
		users:  cfg.Users,
		sink:   cfg.Sink,
		hooks:  cfg.Hooks,
		clock:  safeClock(cfg.Clock),
		idGen:  safeIDGen(cfg.IDGen),
		logger: safeLogger(cfg.Logger),
	}
}

var (
	_ gocommand.Commander[ActivityLogInput] = (*ActivityLogCommand)(nil)
	_ types.ActivityRecorder                = (*ActivityLogCommand)(nil)
)

// Execute resolves the user, validates the action and persists the entry.
func (c *ActivityLogCommand) Execute(ctx context.Context, input ActivityLogInput) error {
	userID, err := parseUserID(input.UserID)
	if err != nil {
		c.fail(ctx, uuid.Nil, input.Action, types.FailureUserNotFound, err)
		return err
	}
	entry, err := c.append(ctx, userID, input.Action, input.Details)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *entry
	}
	return nil
}

// Record implements types.ActivityRecorder.
func (c *ActivityLogCommand) Record(ctx context.Context, userID uuid.UUID, action types.Action, details string) (*types.ActivityEntry, error) {
	return c.append(ctx, userID, string(action), details)
}

func (c *ActivityLogCommand) append(ctx context.Context, userID uuid.UUID, rawAction, details string) (*types.ActivityEntry, error) {
	if c.sink == nil {
		return nil, types.ErrMissingActivitySink
	}
	if c.users == nil {
		return nil, types.ErrMissingUserRepository
	}

	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		err = apperr.Storage(err, "user lookup")
		c.fail(ctx, userID, rawAction, types.FailureStorage, err)
		return nil, err
	}
	if user == nil {
		err = apperr.UserNotFound(userID)
		c.fail(ctx, userID, rawAction, types.FailureUserNotFound, err)
		return nil, err
	}

	action, err := types.ParseAction(rawAction)
	if err != nil {
		err = apperr.InvalidAction(rawAction, err)
		c.fail(ctx, userID, rawAction, types.FailureInvalidAction, err)
		return nil, err
	}

	saved, err := c.sink.Log(ctx, types.ActivityEntry{
		ID:        c.idGen.UUID(),
		UserID:    user.ID,
		Action:    action,
		Details:   details,
		Timestamp: now(c.clock),
	})
	if err != nil {
		err = apperr.Storage(err, "activity insert")
		c.fail(ctx, userID, rawAction, types.FailureStorage, err)
		return nil, err
	}

	emitActivityHook(ctx, c.hooks, *saved)
	return saved, nil
}

func (c *ActivityLogCommand) fail(ctx context.Context, userID uuid.UUID, action, reason string, err error) {
	if reason == types.FailureStorage {
		c.logger.Error("activity log write failed", err, "user_id", userID.String(), "action", action)
	} else {
		c.logger.Warn("activity log rejected", "user_id", userID.String(), "action", action, "reason", reason)
	}
	emitActivityFailure(ctx, c.hooks, types.ActivityFailure{
		UserID: userID,
		Action: action,
		Reason: reason,
		Err:    err,
	})
}
