package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// ContactCreateInput adds a contact to UserID's address book.
type ContactCreateInput struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	Address string
	Result  *types.Contact
}

// Type implements gocommand.Message.
func (ContactCreateInput) Type() string {
	return "command.contact.create"
}

// Validate implements gocommand.Message.
func (input ContactCreateInput) Validate() error {
	switch {
	case input.UserID == uuid.Nil:
		return ErrUserIDRequired
	case strings.TrimSpace(input.Name) == "":
		return ErrNameRequired
	case strings.TrimSpace(input.Phone) == "":
		return ErrPhoneRequired
	case !validEmail(input.Email):
		return ErrEmailInvalid
	default:
		return nil
	}
}

// ContactCreateCommand stores new contacts.
type ContactCreateCommand struct {
	users    types.UserRepository
	contacts types.ContactRepository
	activity types.ActivityRecorder
	hooks    types.Hooks
}

// ContactCommandConfig wires dependencies shared by the contact commands.
type ContactCommandConfig struct {
	Users    types.UserRepository
	Contacts types.ContactRepository
	Activity types.ActivityRecorder
	Clock    types.Clock
	Hooks    types.Hooks
	Logger   types.Logger
}

// NewContactCreateCommand constructs the create handler.
func NewContactCreateCommand(cfg ContactCommandConfig) *ContactCreateCommand {
	return &ContactCreateCommand{
		users:    cfg.Users,
		contacts: cfg.Contacts,
		activity: cfg.Activity,
		hooks:    cfg.Hooks,
	}
}

var _ gocommand.Commander[ContactCreateInput] = (*ContactCreateCommand)(nil)

// Execute checks the owner and phone uniqueness, stores the contact and
// records CREATE under the owner.
func (c *ContactCreateCommand) Execute(ctx context.Context, input ContactCreateInput) error {
	switch {
	case c.users == nil:
		return types.ErrMissingUserRepository
	case c.contacts == nil:
		return types.ErrMissingContactRepository
	}
	if input.UserID == uuid.Nil {
		return apperr.UserNotFound(input.UserID)
	}
	if err := input.Validate(); err != nil {
		return apperr.Validation(err.Error(), err)
	}
	if _, err := mustGetUser(ctx, c.users, input.UserID); err != nil {
		return err
	}

	phone := strings.TrimSpace(input.Phone)
	existing, err := c.contacts.FindContactByPhone(ctx, input.UserID, phone)
	if err != nil {
		return apperr.Storage(err, "phone lookup")
	}
	if existing != nil {
		return apperr.Conflict("Phone number already exists for this user", map[string]any{"phone": phone})
	}

	created, err := c.contacts.CreateContact(ctx, types.Contact{
		UserID:  input.UserID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   phone,
		Address: input.Address,
	})
	if err != nil {
		if apperr.IsDuplicate(err) {
			return apperr.Conflict("Phone number already exists for this user", map[string]any{"phone": phone})
		}
		return apperr.Storage(err, "contact insert")
	}

	if input.Result != nil {
		*input.Result = *created
	}
	emitContactHook(ctx, c.hooks, types.ContactEvent{
		ContactID:  created.ID,
		UserID:     created.UserID,
		Action:     types.ActionCreate,
		OccurredAt: created.CreatedAt,
	})

	return recordActivity(ctx, c.activity, input.UserID, types.ActionCreate, "Created contact with phone: "+created.Phone)
}
