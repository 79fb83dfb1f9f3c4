package service

import (
	"context"

	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/directory"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

// Service is the entry point for go-contacts. It wires repositories, hooks,
// and command/query facades supplied by the host application.
type Service struct {
	cfg       Config
	directory types.UserDirectory
	commands  Commands
	queries   Queries
}

// Commands exposes the service command handlers.
type Commands struct {
	LogActivity   *command.ActivityLogCommand
	UserCreate    *command.UserCreateCommand
	UserUpdate    *command.UserUpdateCommand
	UserDelete    *command.UserDeleteCommand
	ContactCreate *command.ContactCreateCommand
	ContactUpdate *command.ContactUpdateCommand
	ContactDelete *command.ContactDeleteCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	UserLogs         *query.UserLogsQuery
	UserLogsByAction *query.UserLogsByActionQuery
	ActivityDetail   *query.ActivityDetailQuery
	UserLogPage      *query.UserLogPageQuery
	AdminLogPage     *query.AdminLogPageQuery
	UserLogStats     *query.UserLogStatsQuery
	AllLogStats      *query.AllLogStatsQuery
	AdminLogStats    *query.AdminLogStatsQuery
	UserLookup       *query.UserLookupQuery
	UserList         *query.UserListQuery
	UserPage         *query.UserPageQuery
	UserStats        *query.UserStatsQuery
	ContactLookup    *query.ContactLookupQuery
	ContactSearch    *query.ContactSearchQuery
	UserContacts     *query.UserContactsQuery
	UserContactPage  *query.UserContactPageQuery
	UserContact      *query.UserContactQuery
	UserContactRange *query.UserContactRangeQuery
	AdminContactPage *query.AdminContactPageQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun-backed repositories, hooks, feature gates, etc.).
type Config struct {
	UserRepository     types.UserRepository
	ContactRepository  types.ContactRepository
	ActivityRepository types.ActivityRepository
	UserDirectory      types.UserDirectory
	FeatureGate        featuregate.FeatureGate
	Hooks              types.Hooks
	Clock              types.Clock
	IDGenerator        types.IDGenerator
	Logger             types.Logger
	TransitionPolicy   types.TransitionPolicy
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	dir := norm.UserDirectory
	if dir == nil && norm.UserRepository != nil {
		dir = directory.NewDirectory(norm.UserRepository)
	}
	s := &Service{
		cfg:       norm,
		directory: dir,
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.TransitionPolicy == nil {
		cfg.TransitionPolicy = types.DefaultTransitionPolicy()
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Directory returns the user lookup used for existence and role checks.
func (s *Service) Directory() types.UserDirectory {
	if s == nil {
		return nil
	}
	return s.directory
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s.HealthCheck(context.Background()) == nil
}

// HealthCheck surfaces missing configuration. Transports add their own
// connectivity checks on top.
func (s *Service) HealthCheck(_ context.Context) error {
	switch {
	case s == nil:
		return types.ErrServiceNotReady
	case s.cfg.UserRepository == nil:
		return types.ErrMissingUserRepository
	case s.cfg.ContactRepository == nil:
		return types.ErrMissingContactRepository
	case s.cfg.ActivityRepository == nil:
		return types.ErrMissingActivityRepository
	default:
		return nil
	}
}

func (s *Service) buildCommands() Commands {
	logActivity := command.NewActivityLogCommand(command.ActivityLogConfig{
		Users:  s.directory,
		Sink:   s.cfg.ActivityRepository,
		Hooks:  s.cfg.Hooks,
		Clock:  s.cfg.Clock,
		IDGen:  s.cfg.IDGenerator,
		Logger: s.cfg.Logger,
	})
	contactCfg := command.ContactCommandConfig{
		Users:    s.cfg.UserRepository,
		Contacts: s.cfg.ContactRepository,
		Activity: logActivity,
		Clock:    s.cfg.Clock,
		Hooks:    s.cfg.Hooks,
		Logger:   s.cfg.Logger,
	}
	return Commands{
		LogActivity: logActivity,
		UserCreate: command.NewUserCreateCommand(command.UserCreateCommandConfig{
			Repository:  s.cfg.UserRepository,
			Activity:    logActivity,
			FeatureGate: s.cfg.FeatureGate,
			Clock:       s.cfg.Clock,
			Hooks:       s.cfg.Hooks,
			Logger:      s.cfg.Logger,
		}),
		UserUpdate: command.NewUserUpdateCommand(command.UserUpdateCommandConfig{
			Repository: s.cfg.UserRepository,
			Activity:   logActivity,
			Policy:     s.cfg.TransitionPolicy,
			Clock:      s.cfg.Clock,
			Hooks:      s.cfg.Hooks,
			Logger:     s.cfg.Logger,
		}),
		UserDelete: command.NewUserDeleteCommand(command.UserDeleteCommandConfig{
			Users:    s.cfg.UserRepository,
			Contacts: s.cfg.ContactRepository,
			Logs:     s.cfg.ActivityRepository,
			Activity: logActivity,
			Clock:    s.cfg.Clock,
			Hooks:    s.cfg.Hooks,
			Logger:   s.cfg.Logger,
		}),
		ContactCreate: command.NewContactCreateCommand(contactCfg),
		ContactUpdate: command.NewContactUpdateCommand(contactCfg),
		ContactDelete: command.NewContactDeleteCommand(contactCfg),
	}
}

func (s *Service) buildQueries() Queries {
	activityCfg := query.ActivityQueryConfig{
		Repository: s.cfg.ActivityRepository,
		Users:      s.directory,
		Activity:   s.commands.LogActivity,
		Logger:     s.cfg.Logger,
	}
	userCfg := query.UserQueryConfig{
		Repository: s.cfg.UserRepository,
		Users:      s.directory,
		Activity:   s.commands.LogActivity,
		Logger:     s.cfg.Logger,
	}
	contactCfg := query.ContactQueryConfig{
		Repository: s.cfg.ContactRepository,
		Users:      s.directory,
		Activity:   s.commands.LogActivity,
		Logger:     s.cfg.Logger,
	}
	return Queries{
		UserLogs:         query.NewUserLogsQuery(activityCfg),
		UserLogsByAction: query.NewUserLogsByActionQuery(activityCfg),
		ActivityDetail:   query.NewActivityDetailQuery(activityCfg),
		UserLogPage:      query.NewUserLogPageQuery(activityCfg),
		AdminLogPage:     query.NewAdminLogPageQuery(activityCfg),
		UserLogStats:     query.NewUserLogStatsQuery(activityCfg),
		AllLogStats:      query.NewAllLogStatsQuery(activityCfg),
		AdminLogStats:    query.NewAdminLogStatsQuery(activityCfg),
		UserLookup:       query.NewUserLookupQuery(userCfg),
		UserList:         query.NewUserListQuery(userCfg),
		UserPage:         query.NewUserPageQuery(userCfg),
		UserStats:        query.NewUserStatsQuery(userCfg),
		ContactLookup:    query.NewContactLookupQuery(contactCfg),
		ContactSearch:    query.NewContactSearchQuery(contactCfg),
		UserContacts:     query.NewUserContactsQuery(contactCfg),
		UserContactPage:  query.NewUserContactPageQuery(contactCfg),
		UserContact:      query.NewUserContactQuery(contactCfg),
		UserContactRange: query.NewUserContactRangeQuery(contactCfg),
		AdminContactPage: query.NewAdminContactPageQuery(contactCfg),
	}
}
