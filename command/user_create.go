package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

// UserCreateInput captures the payload for user registration.
type UserCreateInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Role     string
	Result   *types.UserView
}

// Type implements gocommand.Message.
func (UserCreateInput) Type() string {
	return "command.user.create"
}

// Validate implements gocommand.Message.
func (input UserCreateInput) Validate() error {
	switch {
	case strings.TrimSpace(input.Username) == "":
		return ErrUsernameRequired
	case strings.TrimSpace(input.Email) == "":
		return ErrEmailRequired
	case !validEmail(input.Email):
		return ErrEmailInvalid
	case strings.TrimSpace(input.Name) == "":
		return ErrNameRequired
	case input.Password == "":
		return ErrPasswordRequired
	default:
		return nil
	}
}

// UserCreateCommand registers users.
type UserCreateCommand struct {
	repo     types.UserRepository
	activity types.ActivityRecorder
	gate     featuregate.FeatureGate
	clock    types.Clock
	hooks    types.Hooks
	logger   types.Logger
}

// UserCreateCommandConfig wires dependencies for the create command.
type UserCreateCommandConfig struct {
	Repository  types.UserRepository
	Activity    types.ActivityRecorder
	FeatureGate featuregate.FeatureGate
	Clock       types.Clock
	Hooks       types.Hooks
	Logger      types.Logger
}

// NewUserCreateCommand constructs the create handler.
func NewUserCreateCommand(cfg UserCreateCommandConfig) *UserCreateCommand {
	return &UserCreateCommand{
		repo:     cfg.Repository,
		activity: cfg.Activity,
		gate:     cfg.FeatureGate,
		clock:    safeClock(cfg.Clock),
		hooks:    cfg.Hooks,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[UserCreateInput] = (*UserCreateCommand)(nil)

// Execute creates the user and records a CREATE entry under the new id.
func (c *UserCreateCommand) Execute(ctx context.Context, input UserCreateInput) error {
	if c.repo == nil {
		return types.ErrMissingUserRepository
	}
	if err := input.Validate(); err != nil {
		return apperr.Validation(err.Error(), err)
	}

	enabled, err := featureEnabled(ctx, c.gate, featuregate.FeatureUsersSignup)
	if err != nil {
		return apperr.Internal(err, "Feature gate unavailable")
	}
	if !enabled {
		return apperr.Unauthorized(uuid.Nil, "User signup is disabled")
	}

	role, err := types.ParseRole(input.Role)
	if err != nil {
		return apperr.Validation("Invalid role: "+input.Role, err)
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := c.ensureAvailable(ctx, username, email); err != nil {
		return err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return apperr.Validation("Password cannot be used", err)
	}

	created, err := c.repo.CreateUser(ctx, types.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Status:       types.StatusActive,
		CreatedAt:    now(c.clock),
	})
	if err != nil {
		if apperr.IsDuplicate(err) {
			return apperr.Conflict("Username or email is already in use", nil)
		}
		return apperr.Storage(err, "user insert")
	}

	if input.Result != nil {
		*input.Result = created.View()
	}
	emitUserHook(ctx, c.hooks, types.UserEvent{
		UserID:      created.ID,
		PerformedBy: created.ID,
		Action:      types.ActionCreate,
		OccurredAt:  created.CreatedAt,
	})
	c.logger.Info("user created", "user_id", created.ID.String(), "role", string(created.Role))

	return recordActivity(ctx, c.activity, created.ID, types.ActionCreate, "Created user with ID: "+created.ID.String())
}

func (c *UserCreateCommand) ensureAvailable(ctx context.Context, username, email string) error {
	existing, err := c.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return apperr.Storage(err, "username lookup")
	}
	if existing != nil {
		return apperr.Conflict("Username is already in use", map[string]any{"username": username})
	}
	existing, err = c.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return apperr.Storage(err, "email lookup")
	}
	if existing != nil {
		return apperr.Conflict("Email is already in use", map[string]any{"email": email})
	}
	return nil
}
