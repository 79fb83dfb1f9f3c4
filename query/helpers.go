package query

import (
	"context"

	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

// requireAdmin resolves id and fails with Unauthorized unless it names an
// ADMIN user.
func requireAdmin(ctx context.Context, users types.UserDirectory, id uuid.UUID) (*types.User, error) {
	if users == nil {
		return nil, types.ErrMissingUserRepository
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "user lookup")
	}
	if user == nil || !user.IsAdmin() {
		return nil, apperr.Unauthorized(id, "Unauthorized access: User is not an admin")
	}
	return user, nil
}

func requireUser(ctx context.Context, users types.UserDirectory, id uuid.UUID) (*types.User, error) {
	if users == nil {
		return nil, types.ErrMissingUserRepository
	}
	return users.MustGet(ctx, id)
}

// auditRead records a GET entry. Read results are returned even when the
// entry cannot be written.
func auditRead(ctx context.Context, recorder types.ActivityRecorder, logger types.Logger, userID uuid.UUID, details string) {
	if recorder == nil {
		return
	}
	if _, err := recorder.Record(ctx, userID, types.ActionGet, details); err != nil {
		logger.Warn("read audit skipped", "user_id", userID.String(), "details", details, "error", err.Error())
	}
}
