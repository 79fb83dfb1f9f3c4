package command

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// ContactDeleteInput removes ContactID from UserID's address book.
type ContactDeleteInput struct {
	UserID    uuid.UUID
	ContactID uuid.UUID
}

// Type implements gocommand.Message.
func (ContactDeleteInput) Type() string {
	return "command.contact.delete"
}

// Validate implements gocommand.Message.
func (input ContactDeleteInput) Validate() error {
	switch {
	case input.UserID == uuid.Nil:
		return ErrUserIDRequired
	case input.ContactID == uuid.Nil:
		return ErrContactIDRequired
	default:
		return nil
	}
}

// ContactDeleteCommand deletes contacts owned by the caller.
type ContactDeleteCommand struct {
	contacts types.ContactRepository
	activity types.ActivityRecorder
	clock    types.Clock
	hooks    types.Hooks
}

// NewContactDeleteCommand constructs the delete handler.
func NewContactDeleteCommand(cfg ContactCommandConfig) *ContactDeleteCommand {
	return &ContactDeleteCommand{
		contacts: cfg.Contacts,
		activity: cfg.Activity,
		clock:    safeClock(cfg.Clock),
		hooks:    cfg.Hooks,
	}
}

var _ gocommand.Commander[ContactDeleteInput] = (*ContactDeleteCommand)(nil)

// Execute deletes the contact and records DELETE under the owner.
func (c *ContactDeleteCommand) Execute(ctx context.Context, input ContactDeleteInput) error {
	if c.contacts == nil {
		return types.ErrMissingContactRepository
	}
	if input.ContactID == uuid.Nil {
		return apperr.ContactNotFound(input.ContactID)
	}

	contact, err := c.contacts.GetContact(ctx, input.ContactID)
	if err != nil {
		return apperr.Storage(err, "contact lookup")
	}
	if contact == nil || contact.UserID != input.UserID {
		return apperr.ContactNotFound(input.ContactID)
	}
	if err := c.contacts.DeleteContact(ctx, contact.ID); err != nil {
		return apperr.Storage(err, "contact delete")
	}

	emitContactHook(ctx, c.hooks, types.ContactEvent{
		ContactID:  contact.ID,
		UserID:     contact.UserID,
		Action:     types.ActionDelete,
		OccurredAt: now(c.clock),
	})

	details := fmt.Sprintf("Deleted contact with ID: %s belonging to user: %s", contact.ID, input.UserID)
	return recordActivity(ctx, c.activity, input.UserID, types.ActionDelete, details)
}
