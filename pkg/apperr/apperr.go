// Package apperr builds the rich errors returned by commands and queries and
// maps them to transport status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

const (
	TextCodeUserNotFound    = "USER_NOT_FOUND"
	TextCodeContactNotFound = "CONTACT_NOT_FOUND"
	TextCodeInvalidAction   = "INVALID_ACTION"
	TextCodeUnauthorized    = "UNAUTHORIZED"
	TextCodeConflict        = "CONFLICT"
	TextCodeValidation      = "VALIDATION_FAILED"
	TextCodeStorageFailure  = "STORAGE_FAILURE"
	TextCodeInternal        = "INTERNAL_ERROR"
)

// UserNotFound reports a missing user.
func UserNotFound(userID any) error {
	return goerrors.Wrap(types.ErrUserNotFound, goerrors.CategoryNotFound, "User not found").
		WithCode(goerrors.CodeNotFound).
		WithTextCode(TextCodeUserNotFound).
		WithMetadata(map[string]any{"user_id": fmt.Sprint(userID)})
}

// ContactNotFound reports a contact that is missing or owned by another user.
func ContactNotFound(contactID any) error {
	return goerrors.Wrap(types.ErrContactNotFound, goerrors.CategoryNotFound, "Contact not found").
		WithCode(goerrors.CodeNotFound).
		WithTextCode(TextCodeContactNotFound).
		WithMetadata(map[string]any{"contact_id": fmt.Sprint(contactID)})
}

// InvalidAction reports an action string outside the supported set. Parse
// errors that already wrap ErrInvalidAction are kept as the source.
func InvalidAction(raw string, cause error) error {
	source := cause
	if source == nil || !errors.Is(source, types.ErrInvalidAction) {
		source = types.ErrInvalidAction
	}
	return goerrors.Wrap(source, goerrors.CategoryValidation, "Invalid action type: "+raw).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(TextCodeInvalidAction).
		WithMetadata(map[string]any{"action": raw})
}

// Unauthorized reports a caller lacking the role required by the operation.
func Unauthorized(userID any, reason string) error {
	if reason == "" {
		reason = "Access denied"
	}
	return goerrors.Wrap(types.ErrUnauthorized, goerrors.CategoryAuthz, reason).
		WithCode(goerrors.CodeForbidden).
		WithTextCode(TextCodeUnauthorized).
		WithMetadata(map[string]any{"user_id": fmt.Sprint(userID)})
}

// Conflict reports a violated uniqueness rule.
func Conflict(message string, metadata map[string]any) error {
	err := goerrors.Wrap(types.ErrConflict, goerrors.CategoryValidation, message).
		WithCode(http.StatusConflict).
		WithTextCode(TextCodeConflict)
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

// Validation reports malformed client input. Causes that already wrap
// ErrValidation are kept as the source.
func Validation(message string, cause error) error {
	source := cause
	if source == nil || !errors.Is(source, types.ErrValidation) {
		source = errors.Join(types.ErrValidation, cause)
	}
	return goerrors.Wrap(source, goerrors.CategoryValidation, message).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(TextCodeValidation)
}

// Storage wraps a datastore failure raised during op. Errors that already carry
// a kind pass through unchanged.
func Storage(err error, op string) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return goerrors.Wrap(errors.Join(types.ErrStorageFailure, err), goerrors.CategoryInternal, "Storage failure during "+op).
		WithCode(goerrors.CodeInternal).
		WithTextCode(TextCodeStorageFailure).
		WithMetadata(map[string]any{"operation": op})
}

// Internal wraps a failure outside the datastore, such as an unavailable
// feature gate.
func Internal(err error, message string) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithCode(goerrors.CodeInternal).
		WithTextCode(TextCodeInternal)
}

// IsDuplicate reports whether a repository error stems from a unique index.
// Raw driver messages are checked as well for errors that bypass the
// repository layer.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if repository.IsDuplicatedKey(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// Classified reports whether err already maps to one of the known kinds.
func Classified(err error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind.sentinel) {
			return true
		}
	}
	return false
}

var kinds = []struct {
	sentinel error
	status   int
}{
	{types.ErrUserNotFound, http.StatusNotFound},
	{types.ErrContactNotFound, http.StatusNotFound},
	{types.ErrInvalidAction, http.StatusBadRequest},
	{types.ErrValidation, http.StatusBadRequest},
	{types.ErrUnauthorized, http.StatusForbidden},
	{types.ErrConflict, http.StatusConflict},
	{types.ErrStorageFailure, http.StatusInternalServerError},
}

// HTTPStatus maps err to a response status. Unknown errors map to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, kind := range kinds {
		if errors.Is(err, kind.sentinel) {
			return kind.status
		}
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Code >= 400 && rich.Code < 600 {
		return rich.Code
	}
	return http.StatusInternalServerError
}

// Message returns the client facing message for err. Internal failures never
// expose their cause.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return fallback
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Message != "" {
		return rich.Message
	}
	return fallback
}

// TextCode returns the machine readable code attached to err, if any.
func TextCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
