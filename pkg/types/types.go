package types

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterActivity        func(context.Context, ActivityEntry)
	AfterActivityFailure func(context.Context, ActivityFailure)
	AfterUserChange      func(context.Context, UserEvent)
	AfterContactChange   func(context.Context, ContactEvent)
}

// ActivityFailure describes an audit write that could not be completed.
type ActivityFailure struct {
	UserID uuid.UUID
	Action string
	Reason string
	Err    error
}

// UserEvent is emitted after a user mutation is committed.
type UserEvent struct {
	UserID      uuid.UUID
	PerformedBy uuid.UUID
	Action      Action
	OccurredAt  time.Time
}

// ContactEvent is emitted after a contact mutation is committed.
type ContactEvent struct {
	ContactID  uuid.UUID
	UserID     uuid.UUID
	Action     Action
	OccurredAt time.Time
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces time ordered UUIDv7 identifiers so that sorting by id
// follows insertion order.
type UUIDGenerator struct{}

// UUID returns a new UUIDv7, falling back to a random UUID if the v7 source fails.
func (UUIDGenerator) UUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("go-contacts: user not found")
	// ErrInvalidAction indicates an action string outside the supported set.
	ErrInvalidAction = errors.New("go-contacts: invalid action")
	// ErrUnauthorized indicates the caller lacks the role required by the operation.
	ErrUnauthorized = errors.New("go-contacts: unauthorized")
	// ErrStorageFailure wraps failures raised by the datastore.
	ErrStorageFailure = errors.New("go-contacts: storage failure")
	// ErrContactNotFound indicates the contact is missing or owned by another user.
	ErrContactNotFound = errors.New("go-contacts: contact not found")
	// ErrConflict indicates a uniqueness rule was violated.
	ErrConflict = errors.New("go-contacts: conflict")
	// ErrValidation indicates malformed client input.
	ErrValidation = errors.New("go-contacts: validation failed")
	// ErrUserIDRequired indicates a user identifier was omitted.
	ErrUserIDRequired = fmt.Errorf("%w: user id required", ErrValidation)
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-contacts: service not ready")
	// ErrMissingUserRepository occurs when no user repository was supplied.
	ErrMissingUserRepository = errors.New("go-contacts: missing user repository")
	// ErrMissingContactRepository occurs when no contact repository was supplied.
	ErrMissingContactRepository = errors.New("go-contacts: missing contact repository")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("go-contacts: missing activity repository")
	// ErrMissingActivitySink occurs when no activity sink was supplied.
	ErrMissingActivitySink = errors.New("go-contacts: missing activity sink")
)
