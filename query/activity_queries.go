package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// ActivityQueryConfig wires dependencies shared by the audit trail queries.
type ActivityQueryConfig struct {
	Repository types.ActivityRepository
	Users      types.UserDirectory
	Activity   types.ActivityRecorder
	Logger     types.Logger
}

type activityQueries struct {
	repo     types.ActivityRepository
	users    types.UserDirectory
	activity types.ActivityRecorder
	logger   types.Logger
}

func newActivityQueries(cfg ActivityQueryConfig) activityQueries {
	return activityQueries{
		repo:     cfg.Repository,
		users:    cfg.Users,
		activity: cfg.Activity,
		logger:   safeLogger(cfg.Logger),
	}
}

// UserLogsInput selects every entry owned by UserID.
type UserLogsInput struct {
	UserID uuid.UUID
}

// Type implements gocommand.Message.
func (UserLogsInput) Type() string { return "query.activity.user_logs" }

// Validate implements gocommand.Message.
func (UserLogsInput) Validate() error { return nil }

// UserLogsQuery lists a user's entries in insertion order.
type UserLogsQuery struct{ activityQueries }

// NewUserLogsQuery constructs the query.
func NewUserLogsQuery(cfg ActivityQueryConfig) *UserLogsQuery {
	return &UserLogsQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[UserLogsInput, []types.ActivityEntry] = (*UserLogsQuery)(nil)

// Query returns the entries, or an empty slice when there are none.
func (q *UserLogsQuery) Query(ctx context.Context, input UserLogsInput) ([]types.ActivityEntry, error) {
	if q.repo == nil {
		return nil, types.ErrMissingActivityRepository
	}
	if input.UserID == uuid.Nil {
		return []types.ActivityEntry{}, nil
	}
	entries, err := q.repo.ListActivity(ctx, types.ActivityFilter{UserID: input.UserID})
	if err != nil {
		return nil, apperr.Storage(err, "activity list")
	}
	return nonNil(entries), nil
}

// UserLogsByActionInput selects a user's entries of one action kind.
type UserLogsByActionInput struct {
	UserID uuid.UUID
	Action string
}

// Type implements gocommand.Message.
func (UserLogsByActionInput) Type() string { return "query.activity.user_logs_by_action" }

// Validate implements gocommand.Message.
func (input UserLogsByActionInput) Validate() error {
	if _, err := types.ParseAction(input.Action); err != nil {
		return apperr.InvalidAction(input.Action, err)
	}
	return nil
}

// UserLogsByActionQuery lists a user's entries filtered by action.
type UserLogsByActionQuery struct{ activityQueries }

// NewUserLogsByActionQuery constructs the query.
func NewUserLogsByActionQuery(cfg ActivityQueryConfig) *UserLogsByActionQuery {
	return &UserLogsByActionQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[UserLogsByActionInput, []types.ActivityEntry] = (*UserLogsByActionQuery)(nil)

// Query fails with InvalidAction when the action does not parse.
func (q *UserLogsByActionQuery) Query(ctx context.Context, input UserLogsByActionInput) ([]types.ActivityEntry, error) {
	if q.repo == nil {
		return nil, types.ErrMissingActivityRepository
	}
	action, err := types.ParseAction(input.Action)
	if err != nil {
		return nil, apperr.InvalidAction(input.Action, err)
	}
	if input.UserID == uuid.Nil {
		return []types.ActivityEntry{}, nil
	}
	entries, err := q.repo.ListActivity(ctx, types.ActivityFilter{
		UserID:  input.UserID,
		Actions: []types.Action{action},
	})
	if err != nil {
		return nil, apperr.Storage(err, "activity list")
	}
	return nonNil(entries), nil
}

// ActivityDetailInput names one entry as seen by UserID.
// RawID is the id as the caller supplied it and is echoed in audit details
// when set, so malformed ids are recorded verbatim.
type ActivityDetailInput struct {
	UserID uuid.UUID
	ID     uuid.UUID
	RawID  string
}

func (in ActivityDetailInput) idLabel() string {
	if in.RawID != "" {
		return in.RawID
	}
	return in.ID.String()
}

// Type implements gocommand.Message.
func (ActivityDetailInput) Type() string { return "query.activity.detail" }

// Validate implements gocommand.Message.
func (ActivityDetailInput) Validate() error { return nil }

// ActivityDetailQuery returns a single entry without revealing entries owned
// by other users.
type ActivityDetailQuery struct{ activityQueries }

// NewActivityDetailQuery constructs the query.
func NewActivityDetailQuery(cfg ActivityQueryConfig) *ActivityDetailQuery {
	return &ActivityDetailQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[ActivityDetailInput, *types.ActivityEntry] = (*ActivityDetailQuery)(nil)

// Query returns nil without error when the entry is missing or owned by
// someone else. Both outcomes are recorded under the caller.
func (q *ActivityDetailQuery) Query(ctx context.Context, input ActivityDetailInput) (*types.ActivityEntry, error) {
	if q.repo == nil {
		return nil, types.ErrMissingActivityRepository
	}
	var entry *types.ActivityEntry
	if input.ID != uuid.Nil {
		found, err := q.repo.GetActivity(ctx, input.ID)
		if err != nil {
			return nil, apperr.Storage(err, "activity lookup")
		}
		entry = found
	}
	if entry == nil || entry.UserID != input.UserID {
		auditRead(ctx, q.activity, q.logger, input.UserID,
			"Attempted to access non-existent or unauthorized activity log with ID: "+input.idLabel())
		return nil, nil
	}
	auditRead(ctx, q.activity, q.logger, input.UserID, "Accessed activity log with ID: "+input.idLabel())
	return entry, nil
}

// UserLogPageInput selects one page of a user's entries.
type UserLogPageInput struct {
	UserID uuid.UUID
	Page   types.PageSpec
}

// Type implements gocommand.Message.
func (UserLogPageInput) Type() string { return "query.activity.user_page" }

// Validate implements gocommand.Message.
func (UserLogPageInput) Validate() error { return nil }

// UserLogPageQuery pages through a user's entries.
type UserLogPageQuery struct{ activityQueries }

// NewUserLogPageQuery constructs the query.
func NewUserLogPageQuery(cfg ActivityQueryConfig) *UserLogPageQuery {
	return &UserLogPageQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[UserLogPageInput, types.Page[types.ActivityEntry]] = (*UserLogPageQuery)(nil)

// Query returns the requested page. Pages past the end are empty.
func (q *UserLogPageQuery) Query(ctx context.Context, input UserLogPageInput) (types.Page[types.ActivityEntry], error) {
	if q.repo == nil {
		return types.Page[types.ActivityEntry]{}, types.ErrMissingActivityRepository
	}
	if input.UserID == uuid.Nil {
		return types.NewPage[types.ActivityEntry](nil, 0, input.Page.Normalize(0, 0)), nil
	}
	page, err := q.repo.PageActivity(ctx, types.ActivityFilter{UserID: input.UserID}, input.Page)
	if err != nil {
		return types.Page[types.ActivityEntry]{}, apperr.Storage(err, "activity page")
	}
	auditRead(ctx, q.activity, q.logger, input.UserID, "Accessed paginated activity logs for user")
	return page, nil
}

// AdminLogPageInput selects one page of every entry on behalf of RequestedBy.
type AdminLogPageInput struct {
	RequestedBy uuid.UUID
	Page        types.PageSpec
}

// Type implements gocommand.Message.
func (AdminLogPageInput) Type() string { return "query.activity.admin_page" }

// Validate implements gocommand.Message.
func (AdminLogPageInput) Validate() error { return nil }

// AdminLogPageQuery pages through the whole audit trail.
type AdminLogPageQuery struct{ activityQueries }

// NewAdminLogPageQuery constructs the query.
func NewAdminLogPageQuery(cfg ActivityQueryConfig) *AdminLogPageQuery {
	return &AdminLogPageQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[AdminLogPageInput, types.Page[types.ActivityEntry]] = (*AdminLogPageQuery)(nil)

// Query requires RequestedBy to be an ADMIN. The page spans all users.
func (q *AdminLogPageQuery) Query(ctx context.Context, input AdminLogPageInput) (types.Page[types.ActivityEntry], error) {
	if q.repo == nil {
		return types.Page[types.ActivityEntry]{}, types.ErrMissingActivityRepository
	}
	if _, err := requireAdmin(ctx, q.users, input.RequestedBy); err != nil {
		return types.Page[types.ActivityEntry]{}, err
	}
	page, err := q.repo.PageActivity(ctx, types.ActivityFilter{}, input.Page)
	if err != nil {
		return types.Page[types.ActivityEntry]{}, apperr.Storage(err, "activity page")
	}
	auditRead(ctx, q.activity, q.logger, input.RequestedBy, "Accessed paginated admin logs")
	return page, nil
}

// UserLogStatsInput selects the stats of one user.
type UserLogStatsInput struct {
	UserID uuid.UUID
}

// Type implements gocommand.Message.
func (UserLogStatsInput) Type() string { return "query.activity.user_stats" }

// Validate implements gocommand.Message.
func (UserLogStatsInput) Validate() error { return nil }

// UserLogStatsQuery counts a user's entries by action.
type UserLogStatsQuery struct{ activityQueries }

// NewUserLogStatsQuery constructs the query.
func NewUserLogStatsQuery(cfg ActivityQueryConfig) *UserLogStatsQuery {
	return &UserLogStatsQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[UserLogStatsInput, types.ActivityStats] = (*UserLogStatsQuery)(nil)

// Query fails with UserNotFound for unknown users.
func (q *UserLogStatsQuery) Query(ctx context.Context, input UserLogStatsInput) (types.ActivityStats, error) {
	if q.repo == nil {
		return types.ActivityStats{}, types.ErrMissingActivityRepository
	}
	if _, err := requireUser(ctx, q.users, input.UserID); err != nil {
		return types.ActivityStats{}, err
	}
	stats, err := q.repo.ActivityStats(ctx, types.ActivityFilter{UserID: input.UserID})
	if err != nil {
		return types.ActivityStats{}, apperr.Storage(err, "activity stats")
	}
	return stats, nil
}

// AllLogStatsInput selects the stats of the whole audit trail.
type AllLogStatsInput struct{}

// Type implements gocommand.Message.
func (AllLogStatsInput) Type() string { return "query.activity.all_stats" }

// Validate implements gocommand.Message.
func (AllLogStatsInput) Validate() error { return nil }

// AllLogStatsQuery counts every entry by action.
type AllLogStatsQuery struct{ activityQueries }

// NewAllLogStatsQuery constructs the query.
func NewAllLogStatsQuery(cfg ActivityQueryConfig) *AllLogStatsQuery {
	return &AllLogStatsQuery{newActivityQueries(cfg)}
}

var _ gocommand.Querier[AllLogStatsInput, types.ActivityStats] = (*AllLogStatsQuery)(nil)

// Query aggregates across all users.
func (q *AllLogStatsQuery) Query(ctx context.Context, _ AllLogStatsInput) (types.ActivityStats, error) {
	if q.repo == nil {
		return types.ActivityStats{}, types.ErrMissingActivityRepository
	}
	stats, err := q.repo.ActivityStats(ctx, types.ActivityFilter{})
	if err != nil {
		return types.ActivityStats{}, apperr.Storage(err, "activity stats")
	}
	return stats, nil
}

// AdminLogStatsInput selects global stats on behalf of RequestedBy.
type AdminLogStatsInput struct {
	RequestedBy uuid.UUID
}

// Type implements gocommand.Message.
func (AdminLogStatsInput) Type() string { return "query.activity.admin_stats" }

// Validate implements gocommand.Message.
func (AdminLogStatsInput) Validate() error { return nil }

// AdminLogStatsQuery gates AllLogStatsQuery behind the ADMIN role.
type AdminLogStatsQuery struct {
	activityQueries
	all *AllLogStatsQuery
}

// NewAdminLogStatsQuery constructs the query.
func NewAdminLogStatsQuery(cfg ActivityQueryConfig) *AdminLogStatsQuery {
	return &AdminLogStatsQuery{
		activityQueries: newActivityQueries(cfg),
		all:             NewAllLogStatsQuery(cfg),
	}
}

var _ gocommand.Querier[AdminLogStatsInput, types.ActivityStats] = (*AdminLogStatsQuery)(nil)

// Query fails with Unauthorized unless RequestedBy is an ADMIN.
func (q *AdminLogStatsQuery) Query(ctx context.Context, input AdminLogStatsInput) (types.ActivityStats, error) {
	if _, err := requireAdmin(ctx, q.users, input.RequestedBy); err != nil {
		return types.ActivityStats{}, err
	}
	return q.all.Query(ctx, AllLogStatsInput{})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
