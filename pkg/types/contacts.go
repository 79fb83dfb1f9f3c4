package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Contact is an address book entry owned by a user.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactPatch carries optional contact fields merged during updates.
type ContactPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// ContactFilter narrows contact listings. Zero values mean "no constraint";
// the created range bounds are inclusive.
type ContactFilter struct {
	UserID      uuid.UUID
	Email       string
	Phone       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ContactRepository persists contacts.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact Contact) (*Contact, error)
	UpdateContact(ctx context.Context, contact Contact) (*Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	DeleteContactsByUser(ctx context.Context, userID uuid.UUID) (int, error)
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindContactByPhone(ctx context.Context, userID uuid.UUID, phone string) (*Contact, error)
	ListContacts(ctx context.Context, filter ContactFilter) ([]Contact, error)
	PageContacts(ctx context.Context, filter ContactFilter, page PageSpec) (Page[Contact], error)
}
