package command

import (
	"context"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// UserUpdateInput captures a partial user update made by PerformedBy.
type UserUpdateInput struct {
	UserID      uuid.UUID
	PerformedBy uuid.UUID
	Patch       types.UserPatch
	Result      *types.UserView
}

// Type implements gocommand.Message.
func (UserUpdateInput) Type() string {
	return "command.user.update"
}

// Validate implements gocommand.Message.
func (input UserUpdateInput) Validate() error {
	switch {
	case input.UserID == uuid.Nil:
		return ErrUserIDRequired
	case input.PerformedBy == uuid.Nil:
		return ErrPerformerRequired
	default:
		return nil
	}
}

// UserUpdateCommand applies partial updates and enforces the status graph.
type UserUpdateCommand struct {
	repo     types.UserRepository
	activity types.ActivityRecorder
	policy   types.TransitionPolicy
	clock    types.Clock
	hooks    types.Hooks
	logger   types.Logger
}

// UserUpdateCommandConfig wires dependencies for the update command.
type UserUpdateCommandConfig struct {
	Repository types.UserRepository
	Activity   types.ActivityRecorder
	Policy     types.TransitionPolicy
	Clock      types.Clock
	Hooks      types.Hooks
	Logger     types.Logger
}

// NewUserUpdateCommand constructs the update handler.
func NewUserUpdateCommand(cfg UserUpdateCommandConfig) *UserUpdateCommand {
	policy := cfg.Policy
	if policy == nil {
		policy = types.DefaultTransitionPolicy()
	}
	return &UserUpdateCommand{
		repo:     cfg.Repository,
		activity: cfg.Activity,
		policy:   policy,
		clock:    safeClock(cfg.Clock),
		hooks:    cfg.Hooks,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[UserUpdateInput] = (*UserUpdateCommand)(nil)

// Execute merges the patch into the stored user. Uniqueness conflicts are
// recorded under the performer before they are returned.
func (c *UserUpdateCommand) Execute(ctx context.Context, input UserUpdateInput) error {
	if c.repo == nil {
		return types.ErrMissingUserRepository
	}
	if err := input.Validate(); err != nil {
		return apperr.Validation(err.Error(), err)
	}

	user, err := mustGetUser(ctx, c.repo, input.UserID)
	if err != nil {
		return err
	}
	if _, err := mustGetUser(ctx, c.repo, input.PerformedBy); err != nil {
		return err
	}

	updated := *user
	patch := input.Patch

	if email, ok := trimmed(patch.Email); ok {
		if email == "" {
			return apperr.Validation("Email cannot be blank", ErrEmailRequired)
		}
		if !validEmail(email) {
			return apperr.Validation("Invalid email: "+email, ErrEmailInvalid)
		}
		email = strings.ToLower(email)
		if err := c.checkConflict(ctx, input, "email", email, c.repo.FindUserByEmail); err != nil {
			return err
		}
		updated.Email = email
	}
	if username, ok := trimmed(patch.Username); ok {
		if username == "" {
			return apperr.Validation("Username cannot be blank", ErrUsernameRequired)
		}
		if err := c.checkConflict(ctx, input, "username", username, c.repo.FindUserByUsername); err != nil {
			return err
		}
		updated.Username = username
	}
	if name, ok := trimmed(patch.Name); ok {
		if name == "" {
			return apperr.Validation("Name cannot be blank", ErrNameRequired)
		}
		updated.Name = name
	}
	if patch.Role != nil {
		role, err := types.ParseRole(string(*patch.Role))
		if err != nil {
			return apperr.Validation("Invalid role: "+string(*patch.Role), err)
		}
		updated.Role = role
	}
	if patch.Status != nil {
		if err := c.applyStatus(&updated, *patch.Status, input.PerformedBy); err != nil {
			return err
		}
	}

	saved, err := c.repo.UpdateUser(ctx, updated)
	if err != nil {
		if apperr.IsDuplicate(err) {
			return apperr.Conflict("Username or email is already in use by another user", nil)
		}
		return apperr.Storage(err, "user update")
	}

	if input.Result != nil {
		*input.Result = saved.View()
	}
	emitUserHook(ctx, c.hooks, types.UserEvent{
		UserID:      saved.ID,
		PerformedBy: input.PerformedBy,
		Action:      types.ActionUpdate,
		OccurredAt:  saved.UpdatedAt,
	})

	return recordActivity(ctx, c.activity, input.PerformedBy, types.ActionUpdate, "Successfully updated user with ID: "+saved.ID.String())
}

type userFinder func(context.Context, string) (*types.User, error)

func (c *UserUpdateCommand) checkConflict(ctx context.Context, input UserUpdateInput, field, value string, find userFinder) error {
	existing, err := find(ctx, value)
	if err != nil {
		return apperr.Storage(err, field+" lookup")
	}
	if existing == nil || existing.ID == input.UserID {
		return nil
	}
	label := strings.ToUpper(field[:1]) + field[1:]
	details := fmt.Sprintf("Conflict on %s %s update: %s %s is already used by another user", input.UserID, field, label, value)
	if err := recordActivity(ctx, c.activity, input.PerformedBy, types.ActionUpdate, details); err != nil {
		c.logger.Error("conflict audit failed", err, "user_id", input.UserID.String())
	}
	return apperr.Conflict(label+" is already in use by another user", map[string]any{field: value})
}

func (c *UserUpdateCommand) applyStatus(user *types.User, raw types.UserStatus, performer uuid.UUID) error {
	target, err := types.ParseUserStatus(string(raw))
	if err != nil {
		return apperr.Validation("Invalid status: "+string(raw), err)
	}
	current := user.Status
	if current == "" {
		current = types.StatusActive
	}
	if err := c.policy.Validate(current, target); err != nil {
		return apperr.Validation(fmt.Sprintf("Status cannot change from %s to %s", current, target), err)
	}
	if target == current {
		return nil
	}
	user.Status = target
	if target == types.StatusDeactivated {
		at := now(c.clock)
		user.DeactivatedAt = &at
		user.DeactivatedBy = performer
	} else {
		user.DeactivatedAt = nil
		user.DeactivatedBy = uuid.Nil
	}
	return nil
}
