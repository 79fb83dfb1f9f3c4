package command

import (
	"fmt"

	"github.com/goliatone/go-contacts/pkg/types"
)

var (
	// ErrUsernameRequired indicates a user payload without a username.
	ErrUsernameRequired = fmt.Errorf("%w: username required", types.ErrValidation)
	// ErrEmailRequired indicates a user payload without an email address.
	ErrEmailRequired = fmt.Errorf("%w: email required", types.ErrValidation)
	// ErrEmailInvalid indicates an email address that is not well formed.
	ErrEmailInvalid = fmt.Errorf("%w: invalid email", types.ErrValidation)
	// ErrNameRequired indicates a user or contact payload without a name.
	ErrNameRequired = fmt.Errorf("%w: name required", types.ErrValidation)
	// ErrPasswordRequired indicates a user payload without a password.
	ErrPasswordRequired = fmt.Errorf("%w: password required", types.ErrValidation)
	// ErrPhoneRequired indicates a contact payload without a phone number.
	ErrPhoneRequired = fmt.Errorf("%w: phone required", types.ErrValidation)
	// ErrPerformerRequired indicates a mutation that omits the performing user.
	ErrPerformerRequired = fmt.Errorf("%w: performing user required", types.ErrValidation)
	// ErrContactIDRequired indicates a contact command without a contact id.
	ErrContactIDRequired = fmt.Errorf("%w: contact id required", types.ErrValidation)
	// ErrUserIDRequired occurs when a command omits the owning user.
	ErrUserIDRequired = types.ErrUserIDRequired
)
