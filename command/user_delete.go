package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// UserDeleteInput removes UserID on behalf of PerformedBy.
type UserDeleteInput struct {
	UserID      uuid.UUID
	PerformedBy uuid.UUID
	Result      *types.UserView
}

// Type implements gocommand.Message.
func (UserDeleteInput) Type() string {
	return "command.user.delete"
}

// Validate implements gocommand.Message.
func (input UserDeleteInput) Validate() error {
	switch {
	case input.UserID == uuid.Nil:
		return ErrUserIDRequired
	case input.PerformedBy == uuid.Nil:
		return ErrPerformerRequired
	default:
		return nil
	}
}

// UserDeleteCommand deletes a user together with its contacts and entries.
type UserDeleteCommand struct {
	users    types.UserRepository
	contacts types.ContactRepository
	logs     types.ActivityRepository
	activity types.ActivityRecorder
	clock    types.Clock
	hooks    types.Hooks
	logger   types.Logger
}

// UserDeleteCommandConfig wires dependencies for the delete command.
type UserDeleteCommandConfig struct {
	Users    types.UserRepository
	Contacts types.ContactRepository
	Logs     types.ActivityRepository
	Activity types.ActivityRecorder
	Clock    types.Clock
	Hooks    types.Hooks
	Logger   types.Logger
}

// NewUserDeleteCommand constructs the delete handler.
func NewUserDeleteCommand(cfg UserDeleteCommandConfig) *UserDeleteCommand {
	return &UserDeleteCommand{
		users:    cfg.Users,
		contacts: cfg.Contacts,
		logs:     cfg.Logs,
		activity: cfg.Activity,
		clock:    safeClock(cfg.Clock),
		hooks:    cfg.Hooks,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[UserDeleteInput] = (*UserDeleteCommand)(nil)

// Execute removes contacts, then activity entries, then the user, and finally
// records DELETE under the performer. The deletion is not undone when that
// last write fails.
func (c *UserDeleteCommand) Execute(ctx context.Context, input UserDeleteInput) error {
	switch {
	case c.users == nil:
		return types.ErrMissingUserRepository
	case c.contacts == nil:
		return types.ErrMissingContactRepository
	case c.logs == nil:
		return types.ErrMissingActivityRepository
	}
	if err := input.Validate(); err != nil {
		return apperr.Validation(err.Error(), err)
	}

	if _, err := mustGetUser(ctx, c.users, input.PerformedBy); err != nil {
		return err
	}
	user, err := mustGetUser(ctx, c.users, input.UserID)
	if err != nil {
		return err
	}

	contacts, err := c.contacts.DeleteContactsByUser(ctx, user.ID)
	if err != nil {
		return apperr.Storage(err, "contact cascade")
	}
	entries, err := c.logs.DeleteActivityByUser(ctx, user.ID)
	if err != nil {
		return apperr.Storage(err, "activity cascade")
	}
	if err := c.users.DeleteUser(ctx, user.ID); err != nil {
		return apperr.Storage(err, "user delete")
	}
	c.logger.Info("user deleted",
		"user_id", user.ID.String(),
		"performed_by", input.PerformedBy.String(),
		"contacts", contacts,
		"entries", entries,
	)

	if input.Result != nil {
		*input.Result = user.View()
	}
	emitUserHook(ctx, c.hooks, types.UserEvent{
		UserID:      user.ID,
		PerformedBy: input.PerformedBy,
		Action:      types.ActionDelete,
		OccurredAt:  now(c.clock),
	})

	return recordActivity(ctx, c.activity, input.PerformedBy, types.ActionDelete, "Successfully deleted user with ID: "+user.ID.String())
}
