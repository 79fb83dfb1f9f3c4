package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"
)

func TestKindsMapToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"user", UserNotFound("u1"), http.StatusNotFound, TextCodeUserNotFound},
		{"contact", ContactNotFound("c1"), http.StatusNotFound, TextCodeContactNotFound},
		{"action", InvalidAction("read", nil), http.StatusBadRequest, TextCodeInvalidAction},
		{"authz", Unauthorized("u1", ""), http.StatusForbidden, TextCodeUnauthorized},
		{"conflict", Conflict("Email is already in use by another user", nil), http.StatusConflict, TextCodeConflict},
		{"validation", Validation("bad input", nil), http.StatusBadRequest, TextCodeValidation},
		{"storage", Storage(errors.New("disk full"), "insert"), http.StatusInternalServerError, TextCodeStorageFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.status, HTTPStatus(tc.err))
			require.Equal(t, tc.code, TextCode(tc.err))
		})
	}
}

func TestStorageKeepsCauseAndKind(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage(cause, "select")

	require.True(t, errors.Is(err, types.ErrStorageFailure))
	require.True(t, errors.Is(err, cause))

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	require.Equal(t, goerrors.CategoryInternal, rich.Category)
	require.Equal(t, "select", rich.Metadata["operation"])
}

func TestStoragePassesClassifiedErrors(t *testing.T) {
	notFound := UserNotFound("u1")
	require.Same(t, notFound, Storage(notFound, "lookup"))
	require.Nil(t, Storage(nil, "noop"))
}

func TestInvalidActionWrapsParseError(t *testing.T) {
	_, parseErr := types.ParseAction("read")
	err := InvalidAction("read", parseErr)

	require.True(t, errors.Is(err, types.ErrInvalidAction))
	require.Equal(t, "Invalid action type: read", Message(err, "fallback"))
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Storage(errors.New("pq: password authentication failed"), "insert")
	require.Equal(t, "An error occurred", Message(err, "An error occurred"))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
