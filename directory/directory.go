package directory

import (
	"context"

	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// Directory resolves users for packages that only need existence checks and
// role lookups.
type Directory struct {
	users types.UserRepository
}

// NewDirectory wraps a user repository.
func NewDirectory(users types.UserRepository) *Directory {
	return &Directory{users: users}
}

var _ types.UserDirectory = (*Directory)(nil)

// Exists reports whether id names a stored user.
func (d *Directory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := d.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetByID returns the user or nil when it does not exist.
func (d *Directory) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	if d == nil || d.users == nil {
		return nil, types.ErrMissingUserRepository
	}
	user, err := d.users.GetUser(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "user lookup")
	}
	return user, nil
}

// MustGet returns the user or a UserNotFound error.
func (d *Directory) MustGet(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.UserNotFound(id)
	}
	return user, nil
}
