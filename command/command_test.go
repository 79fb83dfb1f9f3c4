package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

func TestActivityLogCommand_PersistsEntry(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", types.RoleUser)

	var hooked []types.ActivityEntry
	env.hooks.AfterActivity = func(_ context.Context, entry types.ActivityEntry) {
		hooked = append(hooked, entry)
	}
	cmd := env.activityCommand()

	var result types.ActivityEntry
	err := cmd.Execute(context.Background(), ActivityLogInput{
		UserID:  user.ID.String(),
		Action:  "create",
		Details: "Created contact with phone: 555",
		Result:  &result,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.ID)
	require.Equal(t, user.ID, result.UserID)
	require.Equal(t, types.ActionCreate, result.Action)
	require.Equal(t, fixedNow, result.Timestamp)
	require.Len(t, env.logs.entries, 1)
	require.Len(t, hooked, 1)
	require.Equal(t, result.ID, hooked[0].ID)
}

func TestActivityLogCommand_UnknownUserPersistsNothing(t *testing.T) {
	env := newTestEnv()
	var failures []types.ActivityFailure
	env.hooks.AfterActivityFailure = func(_ context.Context, failure types.ActivityFailure) {
		failures = append(failures, failure)
	}
	cmd := env.activityCommand()

	for _, raw := range []string{uuid.NewString(), "not-a-uuid", ""} {
		err := cmd.Execute(context.Background(), ActivityLogInput{UserID: raw, Action: "GET"})
		require.ErrorIs(t, err, types.ErrUserNotFound, raw)
	}
	require.Empty(t, env.logs.entries)
	require.Len(t, failures, 3)
	require.Equal(t, types.FailureUserNotFound, failures[0].Reason)
}

func TestActivityLogCommand_InvalidAction(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("bob", types.RoleUser)
	cmd := env.activityCommand()

	err := cmd.Execute(context.Background(), ActivityLogInput{UserID: user.ID.String(), Action: "READ"})
	require.ErrorIs(t, err, types.ErrInvalidAction)
	require.Equal(t, "Invalid action type: READ", apperr.Message(err, ""))
	require.Empty(t, env.logs.entries)
}

func TestActivityLogCommand_StorageFailure(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("carol", types.RoleUser)
	env.logs.err = errors.New("disk full")
	var reasons []string
	env.hooks.AfterActivityFailure = func(_ context.Context, failure types.ActivityFailure) {
		reasons = append(reasons, failure.Reason)
	}
	cmd := env.activityCommand()

	_, err := cmd.Record(context.Background(), user.ID, types.ActionGet, "")
	require.ErrorIs(t, err, types.ErrStorageFailure)
	require.Equal(t, []string{types.FailureStorage}, reasons)
}

func TestUserCreateCommand_CreatesAndAudits(t *testing.T) {
	env := newTestEnv()
	gate := &stubFeatureGate{enabled: true}
	cmd := NewUserCreateCommand(UserCreateCommandConfig{
		Repository:  env.users,
		Activity:    env.activityCommand(),
		FeatureGate: gate,
		Clock:       fixedClock{},
	})

	var view types.UserView
	err := cmd.Execute(context.Background(), UserCreateInput{
		Username: "dave",
		Email:    "Dave@Example.com",
		Password: "s3cret",
		Name:     "Dave",
		Role:     "admin",
		Result:   &view,
	})
	require.NoError(t, err)
	require.Equal(t, types.RoleAdmin, view.Role)
	require.Equal(t, "dave@example.com", view.Email)
	require.Equal(t, []string{featuregate.FeatureUsersSignup}, gate.keys)

	stored := env.users.users[view.ID]
	require.NotEqual(t, "s3cret", stored.PasswordHash)
	require.True(t, CheckPassword(stored.PasswordHash, "s3cret"))

	require.Len(t, env.logs.entries, 1)
	require.Equal(t, view.ID, env.logs.entries[0].UserID)
	require.Equal(t, "Created user with ID: "+view.ID.String(), env.logs.entries[0].Details)
}

func TestUserCreateCommand_Rejections(t *testing.T) {
	env := newTestEnv()
	env.addUser("taken", types.RoleUser)

	disabled := NewUserCreateCommand(UserCreateCommandConfig{
		Repository:  env.users,
		FeatureGate: &stubFeatureGate{enabled: false},
	})
	err := disabled.Execute(context.Background(), UserCreateInput{Username: "x", Email: "x@example.com", Password: "p", Name: "x"})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	cmd := NewUserCreateCommand(UserCreateCommandConfig{Repository: env.users})
	err = cmd.Execute(context.Background(), UserCreateInput{Username: "taken", Email: "new@example.com", Password: "p", Name: "n"})
	require.ErrorIs(t, err, types.ErrConflict)
	require.Equal(t, 409, apperr.HTTPStatus(err))

	err = cmd.Execute(context.Background(), UserCreateInput{Username: "fresh", Email: "TAKEN@example.com", Password: "p", Name: "n"})
	require.ErrorIs(t, err, types.ErrConflict)

	err = cmd.Execute(context.Background(), UserCreateInput{Username: "fresh", Email: "fresh@example.com", Name: "n"})
	require.ErrorIs(t, err, types.ErrValidation)

	err = cmd.Execute(context.Background(), UserCreateInput{Username: "fresh", Email: "fresh@example.com", Password: "p", Name: "n", Role: "root"})
	require.ErrorIs(t, err, types.ErrValidation)

	err = cmd.Execute(context.Background(), UserCreateInput{Username: "fresh", Email: "not-an-email", Password: "p", Name: "n"})
	require.ErrorIs(t, err, ErrEmailInvalid)
	require.Equal(t, 400, apperr.HTTPStatus(err))
}

func TestUserUpdateCommand_ConflictIsAudited(t *testing.T) {
	env := newTestEnv()
	target := env.addUser("erin", types.RoleUser)
	other := env.addUser("frank", types.RoleUser)
	admin := env.addUser("root", types.RoleAdmin)

	cmd := NewUserUpdateCommand(UserUpdateCommandConfig{
		Repository: env.users,
		Activity:   env.activityCommand(),
	})
	email := other.Email
	err := cmd.Execute(context.Background(), UserUpdateInput{
		UserID:      target.ID,
		PerformedBy: admin.ID,
		Patch:       types.UserPatch{Email: &email},
	})
	require.ErrorIs(t, err, types.ErrConflict)
	require.Equal(t, "Email is already in use by another user", apperr.Message(err, ""))

	require.Len(t, env.logs.entries, 1)
	entry := env.logs.entries[0]
	require.Equal(t, admin.ID, entry.UserID)
	require.Equal(t, types.ActionUpdate, entry.Action)
	require.True(t, strings.HasPrefix(entry.Details, "Conflict on "+target.ID.String()+" email update"))
	require.Equal(t, "erin@example.com", env.users.users[target.ID].Email)
}

func TestUserUpdateCommand_DeactivationStamps(t *testing.T) {
	env := newTestEnv()
	target := env.addUser("gina", types.RoleUser)
	admin := env.addUser("root", types.RoleAdmin)

	cmd := NewUserUpdateCommand(UserUpdateCommandConfig{
		Repository: env.users,
		Activity:   env.activityCommand(),
		Clock:      fixedClock{},
	})
	status := types.StatusDeactivated
	name := "Gina G"
	var view types.UserView
	err := cmd.Execute(context.Background(), UserUpdateInput{
		UserID:      target.ID,
		PerformedBy: admin.ID,
		Patch:       types.UserPatch{Status: &status, Name: &name},
		Result:      &view,
	})
	require.NoError(t, err)
	require.Equal(t, types.StatusDeactivated, view.Status)
	require.Equal(t, "Gina G", view.Name)
	require.NotNil(t, view.DeactivatedAt)
	require.Equal(t, fixedNow, *view.DeactivatedAt)
	require.Equal(t, admin.ID, *view.DeactivatedBy)

	require.Len(t, env.logs.entries, 1)
	require.Equal(t, "Successfully updated user with ID: "+target.ID.String(), env.logs.entries[0].Details)

	suspended := types.StatusSuspended
	err = cmd.Execute(context.Background(), UserUpdateInput{
		UserID:      target.ID,
		PerformedBy: admin.ID,
		Patch:       types.UserPatch{Status: &suspended},
		Result:      &view,
	})
	require.NoError(t, err)
	require.Equal(t, types.StatusSuspended, view.Status)
	require.Nil(t, view.DeactivatedAt)
}

func TestUserUpdateCommand_StatusChangesAreUnrestrictedByDefault(t *testing.T) {
	env := newTestEnv()
	target := env.addUser("ivy", types.RoleUser)
	admin := env.addUser("root", types.RoleAdmin)
	cmd := NewUserUpdateCommand(UserUpdateCommandConfig{Repository: env.users, Activity: env.activityCommand()})

	for _, status := range []types.UserStatus{types.StatusInactive, types.StatusSuspended, types.StatusDeactivated, types.StatusInactive} {
		next := status
		var view types.UserView
		err := cmd.Execute(context.Background(), UserUpdateInput{
			UserID:      target.ID,
			PerformedBy: admin.ID,
			Patch:       types.UserPatch{Status: &next},
			Result:      &view,
		})
		require.NoError(t, err, "moving to %s", status)
		require.Equal(t, status, view.Status)
	}
}

func TestUserUpdateCommand_InjectedPolicyRestrictsStatus(t *testing.T) {
	env := newTestEnv()
	target := env.addUser("jon", types.RoleUser)
	admin := env.addUser("root", types.RoleAdmin)
	cmd := NewUserUpdateCommand(UserUpdateCommandConfig{
		Repository: env.users,
		Activity:   env.activityCommand(),
		Policy:     types.RestrictedTransitionPolicy(),
	})

	inactive := types.StatusInactive
	require.NoError(t, cmd.Execute(context.Background(), UserUpdateInput{
		UserID: target.ID, PerformedBy: admin.ID, Patch: types.UserPatch{Status: &inactive},
	}))

	suspended := types.StatusSuspended
	err := cmd.Execute(context.Background(), UserUpdateInput{
		UserID: target.ID, PerformedBy: admin.ID, Patch: types.UserPatch{Status: &suspended},
	})
	require.ErrorIs(t, err, types.ErrValidation)
	require.ErrorIs(t, err, types.ErrTransitionNotAllowed)
	require.Equal(t, "Status cannot change from INACTIVE to SUSPENDED", apperr.Message(err, ""))
}

func TestUserUpdateCommand_MissingUsers(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("hank", types.RoleUser)
	cmd := NewUserUpdateCommand(UserUpdateCommandConfig{Repository: env.users})

	err := cmd.Execute(context.Background(), UserUpdateInput{UserID: uuid.New(), PerformedBy: user.ID})
	require.ErrorIs(t, err, types.ErrUserNotFound)

	err = cmd.Execute(context.Background(), UserUpdateInput{UserID: user.ID, PerformedBy: uuid.New()})
	require.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestUserDeleteCommand_CascadesInOrder(t *testing.T) {
	env := newTestEnv()
	target := env.addUser("ivan", types.RoleUser)
	admin := env.addUser("root", types.RoleAdmin)
	env.contacts.add(types.Contact{UserID: target.ID, Name: "c", Phone: "1"})
	env.logs.entries = append(env.logs.entries, types.ActivityEntry{ID: uuid.New(), UserID: target.ID, Action: types.ActionGet})

	cmd := NewUserDeleteCommand(UserDeleteCommandConfig{
		Users:    env.users,
		Contacts: env.contacts,
		Logs:     env.logs,
		Activity: env.activityCommand(),
	})
	var view types.UserView
	err := cmd.Execute(context.Background(), UserDeleteInput{UserID: target.ID, PerformedBy: admin.ID, Result: &view})
	require.NoError(t, err)
	require.Equal(t, target.ID, view.ID)
	require.Equal(t, []string{"contacts", "activity", "user"}, env.calls)
	require.NotContains(t, env.users.users, target.ID)
	require.Empty(t, env.contacts.contacts)

	require.Len(t, env.logs.entries, 1)
	require.Equal(t, admin.ID, env.logs.entries[0].UserID)
	require.Equal(t, types.ActionDelete, env.logs.entries[0].Action)
}

func TestUserDeleteCommand_SelfDeleteAuditFails(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("jane", types.RoleUser)
	cmd := NewUserDeleteCommand(UserDeleteCommandConfig{
		Users:    env.users,
		Contacts: env.contacts,
		Logs:     env.logs,
		Activity: env.activityCommand(),
	})

	err := cmd.Execute(context.Background(), UserDeleteInput{UserID: user.ID, PerformedBy: user.ID})
	require.ErrorIs(t, err, types.ErrUserNotFound)
	require.NotContains(t, env.users.users, user.ID)
	require.Empty(t, env.logs.entries)
}

func TestContactCreateCommand(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser("kim", types.RoleUser)
	cfg := ContactCommandConfig{Users: env.users, Contacts: env.contacts, Activity: env.activityCommand()}
	cmd := NewContactCreateCommand(cfg)

	var created types.Contact
	err := cmd.Execute(context.Background(), ContactCreateInput{UserID: owner.ID, Name: "Mom", Phone: " 555-0100 ", Result: &created})
	require.NoError(t, err)
	require.Equal(t, "555-0100", created.Phone)
	require.Equal(t, "Created contact with phone: 555-0100", env.logs.entries[0].Details)

	err = cmd.Execute(context.Background(), ContactCreateInput{UserID: owner.ID, Name: "Dup", Phone: "555-0100"})
	require.ErrorIs(t, err, types.ErrConflict)

	err = cmd.Execute(context.Background(), ContactCreateInput{UserID: uuid.New(), Name: "x", Phone: "1"})
	require.ErrorIs(t, err, types.ErrUserNotFound)

	err = cmd.Execute(context.Background(), ContactCreateInput{UserID: owner.ID, Name: "x"})
	require.ErrorIs(t, err, types.ErrValidation)

	err = cmd.Execute(context.Background(), ContactCreateInput{UserID: owner.ID, Name: "x", Phone: "3", Email: "x@"})
	require.ErrorIs(t, err, ErrEmailInvalid)
}

func TestContactUpdateCommand(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser("lee", types.RoleUser)
	stranger := env.addUser("max", types.RoleUser)
	first := env.contacts.add(types.Contact{UserID: owner.ID, Name: "a", Phone: "1"})
	env.contacts.add(types.Contact{UserID: owner.ID, Name: "b", Phone: "2"})
	foreign := env.contacts.add(types.Contact{UserID: stranger.ID, Name: "z", Phone: "9"})

	cmd := NewContactUpdateCommand(ContactCommandConfig{Users: env.users, Contacts: env.contacts, Activity: env.activityCommand()})

	err := cmd.Execute(context.Background(), ContactUpdateInput{UserID: owner.ID, ContactID: foreign.ID})
	require.ErrorIs(t, err, types.ErrContactNotFound)
	require.Equal(t, "Attempted to update non-existent contact with ID: "+foreign.ID.String(), env.logs.last().Details)

	phone := "2"
	err = cmd.Execute(context.Background(), ContactUpdateInput{UserID: owner.ID, ContactID: first.ID, Patch: types.ContactPatch{Phone: &phone}})
	require.ErrorIs(t, err, types.ErrConflict)
	require.Equal(t, "Conflict: Phone number already exists for another contact", env.logs.last().Details)

	badEmail := "nope"
	err = cmd.Execute(context.Background(), ContactUpdateInput{UserID: owner.ID, ContactID: first.ID, Patch: types.ContactPatch{Email: &badEmail}})
	require.ErrorIs(t, err, ErrEmailInvalid)

	address := "1 Main St"
	var saved types.Contact
	err = cmd.Execute(context.Background(), ContactUpdateInput{
		UserID:    owner.ID,
		ContactID: first.ID,
		Patch:     types.ContactPatch{Address: &address},
		Result:    &saved,
	})
	require.NoError(t, err)
	require.Equal(t, "1 Main St", saved.Address)
	require.Equal(t, "a", saved.Name)
	require.Equal(t, "Updated contact with ID: "+first.ID.String(), env.logs.last().Details)
}

func TestContactDeleteCommand(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser("ned", types.RoleUser)
	stranger := env.addUser("oli", types.RoleUser)
	contact := env.contacts.add(types.Contact{UserID: owner.ID, Name: "a", Phone: "1"})

	cmd := NewContactDeleteCommand(ContactCommandConfig{Users: env.users, Contacts: env.contacts, Activity: env.activityCommand()})

	err := cmd.Execute(context.Background(), ContactDeleteInput{UserID: stranger.ID, ContactID: contact.ID})
	require.ErrorIs(t, err, types.ErrContactNotFound)
	require.Contains(t, env.contacts.contacts, contact.ID)

	err = cmd.Execute(context.Background(), ContactDeleteInput{UserID: owner.ID, ContactID: contact.ID})
	require.NoError(t, err)
	require.NotContains(t, env.contacts.contacts, contact.ID)
	require.Equal(t, "Deleted contact with ID: "+contact.ID.String()+" belonging to user: "+owner.ID.String(), env.logs.last().Details)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedNow }

type testEnv struct {
	users    *fakeUserRepo
	contacts *fakeContactRepo
	logs     *fakeActivityRepo
	hooks    types.Hooks
	calls    []string
}

func newTestEnv() *testEnv {
	env := &testEnv{}
	env.users = &fakeUserRepo{env: env, users: map[uuid.UUID]*types.User{}}
	env.contacts = &fakeContactRepo{env: env, contacts: map[uuid.UUID]*types.Contact{}}
	env.logs = &fakeActivityRepo{env: env}
	return env
}

func (e *testEnv) activityCommand() *ActivityLogCommand {
	return NewActivityLogCommand(ActivityLogConfig{
		Users: directoryFunc(e.users.GetUser),
		Sink:  e.logs,
		Hooks: e.hooks,
		Clock: fixedClock{},
	})
}

func (e *testEnv) addUser(username string, role types.Role) *types.User {
	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Name:     username,
		Role:     role,
		Status:   types.StatusActive,
	}
	e.users.users[user.ID] = user
	return user
}

type directoryFunc func(context.Context, uuid.UUID) (*types.User, error)

func (f directoryFunc) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := f(ctx, id)
	return user != nil, err
}

func (f directoryFunc) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return f(ctx, id)
}

func (f directoryFunc) MustGet(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := f(ctx, id)
	if err == nil && user == nil {
		return nil, apperr.UserNotFound(id)
	}
	return user, err
}

type fakeUserRepo struct {
	env   *testEnv
	users map[uuid.UUID]*types.User
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user types.User) (*types.User, error) {
	copy := user
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	r.users[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user types.User) (*types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, types.ErrUserNotFound
	}
	copy := user
	r.users[user.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	r.env.calls = append(r.env.calls, "user")
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) FindUserByUsername(_ context.Context, username string) (*types.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListUsers(context.Context, types.UserFilter) ([]types.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) PageUsers(context.Context, types.UserFilter, types.PageSpec) (types.Page[types.User], error) {
	return types.Page[types.User]{}, nil
}

func (r *fakeUserRepo) UserStats(context.Context) (types.UserStats, error) {
	return types.UserStats{}, nil
}

type fakeContactRepo struct {
	env      *testEnv
	contacts map[uuid.UUID]*types.Contact
}

func (r *fakeContactRepo) add(contact types.Contact) types.Contact {
	contact.ID = uuid.New()
	r.contacts[contact.ID] = &contact
	return contact
}

func (r *fakeContactRepo) CreateContact(_ context.Context, contact types.Contact) (*types.Contact, error) {
	created := r.add(contact)
	return &created, nil
}

func (r *fakeContactRepo) UpdateContact(_ context.Context, contact types.Contact) (*types.Contact, error) {
	copy := contact
	r.contacts[contact.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeContactRepo) DeleteContact(_ context.Context, id uuid.UUID) error {
	delete(r.contacts, id)
	return nil
}

func (r *fakeContactRepo) DeleteContactsByUser(_ context.Context, userID uuid.UUID) (int, error) {
	r.env.calls = append(r.env.calls, "contacts")
	removed := 0
	for id, contact := range r.contacts {
		if contact.UserID == userID {
			delete(r.contacts, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeContactRepo) GetContact(_ context.Context, id uuid.UUID) (*types.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return nil, nil
	}
	out := *contact
	return &out, nil
}

func (r *fakeContactRepo) FindContactByPhone(_ context.Context, userID uuid.UUID, phone string) (*types.Contact, error) {
	for _, contact := range r.contacts {
		if contact.Phone == phone && (userID == uuid.Nil || contact.UserID == userID) {
			out := *contact
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeContactRepo) ListContacts(context.Context, types.ContactFilter) ([]types.Contact, error) {
	return nil, nil
}

func (r *fakeContactRepo) PageContacts(context.Context, types.ContactFilter, types.PageSpec) (types.Page[types.Contact], error) {
	return types.Page[types.Contact]{}, nil
}

type fakeActivityRepo struct {
	env     *testEnv
	entries []types.ActivityEntry
	err     error
}

func (r *fakeActivityRepo) last() types.ActivityEntry {
	if len(r.entries) == 0 {
		return types.ActivityEntry{}
	}
	return r.entries[len(r.entries)-1]
}

func (r *fakeActivityRepo) Log(_ context.Context, entry types.ActivityEntry) (*types.ActivityEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.entries = append(r.entries, entry)
	return &entry, nil
}

func (r *fakeActivityRepo) GetActivity(context.Context, uuid.UUID) (*types.ActivityEntry, error) {
	return nil, nil
}

func (r *fakeActivityRepo) ListActivity(context.Context, types.ActivityFilter) ([]types.ActivityEntry, error) {
	return r.entries, nil
}

func (r *fakeActivityRepo) PageActivity(context.Context, types.ActivityFilter, types.PageSpec) (types.Page[types.ActivityEntry], error) {
	return types.Page[types.ActivityEntry]{}, nil
}

func (r *fakeActivityRepo) ActivityStats(context.Context, types.ActivityFilter) (types.ActivityStats, error) {
	return types.ActivityStats{}, nil
}

func (r *fakeActivityRepo) DeleteActivityByUser(_ context.Context, userID uuid.UUID) (int, error) {
	r.env.calls = append(r.env.calls, "activity")
	kept := r.entries[:0]
	removed := 0
	for _, entry := range r.entries {
		if entry.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return removed, nil
}

type stubFeatureGate struct {
	enabled bool
	err     error
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	return s.enabled, nil
}
