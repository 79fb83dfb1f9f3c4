package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// ContactUpdateInput merges Patch into a contact owned by UserID.
type ContactUpdateInput struct {
	UserID    uuid.UUID
	ContactID uuid.UUID
	Patch     types.ContactPatch
	Result    *types.Contact
}

// Type implements gocommand.Message.
func (ContactUpdateInput) Type() string {
	return "command.contact.update"
}

// Validate implements gocommand.Message.
func (input ContactUpdateInput) Validate() error {
	switch {
	case input.UserID == uuid.Nil:
		return ErrUserIDRequired
	case input.ContactID == uuid.Nil:
		return ErrContactIDRequired
	default:
		return nil
	}
}

// ContactUpdateCommand applies partial contact updates.
type ContactUpdateCommand struct {
	users    types.UserRepository
	contacts types.ContactRepository
	activity types.ActivityRecorder
	hooks    types.Hooks
	logger   types.Logger
}

// NewContactUpdateCommand constructs the update handler.
func NewContactUpdateCommand(cfg ContactCommandConfig) *ContactUpdateCommand {
	return &ContactUpdateCommand{
		users:    cfg.Users,
		contacts: cfg.Contacts,
		activity: cfg.Activity,
		hooks:    cfg.Hooks,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ContactUpdateInput] = (*ContactUpdateCommand)(nil)

// Execute merges the patch. Missing contacts and phone collisions are recorded
// under the owner before they are returned.
func (c *ContactUpdateCommand) Execute(ctx context.Context, input ContactUpdateInput) error {
	switch {
	case c.users == nil:
		return types.ErrMissingUserRepository
	case c.contacts == nil:
		return types.ErrMissingContactRepository
	}
	if input.UserID == uuid.Nil {
		return apperr.UserNotFound(input.UserID)
	}
	if input.ContactID == uuid.Nil {
		return apperr.ContactNotFound(input.ContactID)
	}
	if _, err := mustGetUser(ctx, c.users, input.UserID); err != nil {
		return err
	}

	contact, err := c.contacts.GetContact(ctx, input.ContactID)
	if err != nil {
		return apperr.Storage(err, "contact lookup")
	}
	if contact == nil || contact.UserID != input.UserID {
		c.audit(ctx, input.UserID, "Attempted to update non-existent contact with ID: "+input.ContactID.String())
		return apperr.ContactNotFound(input.ContactID)
	}

	updated := *contact
	patch := input.Patch
	if name, ok := trimmed(patch.Name); ok {
		if name == "" {
			return apperr.Validation("Name cannot be blank", ErrNameRequired)
		}
		updated.Name = name
	}
	if email, ok := trimmed(patch.Email); ok {
		if !validEmail(email) {
			return apperr.Validation("Invalid email: "+email, ErrEmailInvalid)
		}
		updated.Email = email
	}
	if address, ok := trimmed(patch.Address); ok {
		updated.Address = address
	}
	if phone, ok := trimmed(patch.Phone); ok {
		if phone == "" {
			return apperr.Validation("Phone cannot be blank", ErrPhoneRequired)
		}
		if phone != contact.Phone {
			other, err := c.contacts.FindContactByPhone(ctx, input.UserID, phone)
			if err != nil {
				return apperr.Storage(err, "phone lookup")
			}
			if other != nil && other.ID != contact.ID {
				c.audit(ctx, input.UserID, "Conflict: Phone number already exists for another contact")
				return apperr.Conflict("Phone number already exists for another contact", map[string]any{"phone": phone})
			}
		}
		updated.Phone = phone
	}

	saved, err := c.contacts.UpdateContact(ctx, updated)
	if err != nil {
		if apperr.IsDuplicate(err) {
			return apperr.Conflict("Phone number already exists for another contact", nil)
		}
		return apperr.Storage(err, "contact update")
	}

	if input.Result != nil {
		*input.Result = *saved
	}
	emitContactHook(ctx, c.hooks, types.ContactEvent{
		ContactID:  saved.ID,
		UserID:     saved.UserID,
		Action:     types.ActionUpdate,
		OccurredAt: saved.UpdatedAt,
	})

	return recordActivity(ctx, c.activity, input.UserID, types.ActionUpdate, "Updated contact with ID: "+saved.ID.String())
}

func (c *ContactUpdateCommand) audit(ctx context.Context, userID uuid.UUID, details string) {
	if err := recordActivity(ctx, c.activity, userID, types.ActionUpdate, details); err != nil {
		c.logger.Error("contact audit failed", err, "user_id", userID.String())
	}
}
