package query

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// UserQueryConfig wires dependencies for directory queries.
type UserQueryConfig struct {
	Repository types.UserRepository
	Users      types.UserDirectory
	Activity   types.ActivityRecorder
	Logger     types.Logger
}

// UserLookupInput resolves a single user by exactly one key. ID wins over
// Username, which wins over Email.
type UserLookupInput struct {
	ID       uuid.UUID
	Username string
	Email    string
}

// Type implements gocommand.Message.
func (UserLookupInput) Type() string { return "query.user.lookup" }

// Validate implements gocommand.Message.
func (input UserLookupInput) Validate() error {
	if input.ID == uuid.Nil && strings.TrimSpace(input.Username) == "" && strings.TrimSpace(input.Email) == "" {
		return apperr.Validation("user id, username or email required", types.ErrUserIDRequired)
	}
	return nil
}

// UserLookupQuery loads the public view of one user.
type UserLookupQuery struct {
	repo types.UserRepository
}

// NewUserLookupQuery constructs the lookup query.
func NewUserLookupQuery(cfg UserQueryConfig) *UserLookupQuery {
	return &UserLookupQuery{repo: cfg.Repository}
}

var _ gocommand.Querier[UserLookupInput, types.UserView] = (*UserLookupQuery)(nil)

// Query fails with UserNotFound when nothing matches.
func (q *UserLookupQuery) Query(ctx context.Context, input UserLookupInput) (types.UserView, error) {
	if q.repo == nil {
		return types.UserView{}, types.ErrMissingUserRepository
	}
	var (
		user *types.User
		err  error
		key  any
	)
	switch {
	case input.ID != uuid.Nil:
		key = input.ID
		user, err = q.repo.GetUser(ctx, input.ID)
	case strings.TrimSpace(input.Username) != "":
		key = input.Username
		user, err = q.repo.FindUserByUsername(ctx, strings.TrimSpace(input.Username))
	case strings.TrimSpace(input.Email) != "":
		key = input.Email
		user, err = q.repo.FindUserByEmail(ctx, strings.TrimSpace(input.Email))
	default:
		return types.UserView{}, apperr.UserNotFound(input.ID)
	}
	if err != nil {
		return types.UserView{}, apperr.Storage(err, "user lookup")
	}
	if user == nil {
		return types.UserView{}, apperr.UserNotFound(key)
	}
	return user.View(), nil
}

// UserListInput lists users, optionally restricted to a role.
type UserListInput struct {
	Role string
}

// Type implements gocommand.Message.
func (UserListInput) Type() string { return "query.user.list" }

// Validate implements gocommand.Message.
func (input UserListInput) Validate() error {
	_, err := parseRoleFilter(input.Role)
	return err
}

// UserListQuery lists users without paging.
type UserListQuery struct {
	repo types.UserRepository
}

// NewUserListQuery constructs the list query.
func NewUserListQuery(cfg UserQueryConfig) *UserListQuery {
	return &UserListQuery{repo: cfg.Repository}
}

var _ gocommand.Querier[UserListInput, []types.UserView] = (*UserListQuery)(nil)

// Query matches the role case-insensitively.
func (q *UserListQuery) Query(ctx context.Context, input UserListInput) ([]types.UserView, error) {
	if q.repo == nil {
		return nil, types.ErrMissingUserRepository
	}
	role, err := parseRoleFilter(input.Role)
	if err != nil {
		return nil, err
	}
	users, err := q.repo.ListUsers(ctx, types.UserFilter{Role: role})
	if err != nil {
		return nil, apperr.Storage(err, "user list")
	}
	views := make([]types.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.View())
	}
	return views, nil
}

// UserPageInput selects one page of users, optionally restricted to a role.
type UserPageInput struct {
	Role string
	Page types.PageSpec
}

// Type implements gocommand.Message.
func (UserPageInput) Type() string { return "query.user.page" }

// Validate implements gocommand.Message.
func (input UserPageInput) Validate() error {
	_, err := parseRoleFilter(input.Role)
	return err
}

// UserPageQuery pages through the directory.
type UserPageQuery struct {
	repo types.UserRepository
}

// NewUserPageQuery constructs the page query.
func NewUserPageQuery(cfg UserQueryConfig) *UserPageQuery {
	return &UserPageQuery{repo: cfg.Repository}
}

var _ gocommand.Querier[UserPageInput, types.Page[types.UserView]] = (*UserPageQuery)(nil)

// Query returns public views for the requested page.
func (q *UserPageQuery) Query(ctx context.Context, input UserPageInput) (types.Page[types.UserView], error) {
	if q.repo == nil {
		return types.Page[types.UserView]{}, types.ErrMissingUserRepository
	}
	role, err := parseRoleFilter(input.Role)
	if err != nil {
		return types.Page[types.UserView]{}, err
	}
	page, err := q.repo.PageUsers(ctx, types.UserFilter{Role: role}, input.Page)
	if err != nil {
		return types.Page[types.UserView]{}, apperr.Storage(err, "user page")
	}
	return types.MapPage(page, types.User.View), nil
}

// UserStatsInput requests directory totals on behalf of RequestedBy.
type UserStatsInput struct {
	RequestedBy uuid.UUID
}

// Type implements gocommand.Message.
func (UserStatsInput) Type() string { return "query.user.stats" }

// Validate implements gocommand.Message.
func (UserStatsInput) Validate() error { return nil }

// UserStatsQuery counts users by role. Only admins may call it.
type UserStatsQuery struct {
	repo     types.UserRepository
	users    types.UserDirectory
	activity types.ActivityRecorder
	logger   types.Logger
}

// NewUserStatsQuery constructs the stats query.
func NewUserStatsQuery(cfg UserQueryConfig) *UserStatsQuery {
	return &UserStatsQuery{
		repo:     cfg.Repository,
		users:    cfg.Users,
		activity: cfg.Activity,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Querier[UserStatsInput, types.UserStats] = (*UserStatsQuery)(nil)

// Query fails with Unauthorized for non-admins.
func (q *UserStatsQuery) Query(ctx context.Context, input UserStatsInput) (types.UserStats, error) {
	if q.repo == nil {
		return types.UserStats{}, types.ErrMissingUserRepository
	}
	if _, err := requireAdmin(ctx, q.users, input.RequestedBy); err != nil {
		return types.UserStats{}, err
	}
	stats, err := q.repo.UserStats(ctx)
	if err != nil {
		return types.UserStats{}, apperr.Storage(err, "user stats")
	}
	auditRead(ctx, q.activity, q.logger, input.RequestedBy, "Fetched user statistics")
	return stats, nil
}

func parseRoleFilter(raw string) (types.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	role, err := types.ParseRole(raw)
	if err != nil {
		return "", apperr.Validation("Invalid role: "+raw, err)
	}
	return role, nil
}
