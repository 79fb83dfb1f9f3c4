package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	gconfig "github.com/goliatone/go-config/config"
	contacts "github.com/goliatone/go-contacts"
	"github.com/goliatone/go-contacts/activity"
	"github.com/goliatone/go-contacts/adapter/httpapi"
	"github.com/goliatone/go-contacts/cmd/contactsd/config"
	"github.com/goliatone/go-contacts/contact"
	"github.com/goliatone/go-contacts/directory"
	"github.com/goliatone/go-contacts/migrations"
	"github.com/goliatone/go-contacts/pkg/telemetry"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"
)

// App holds the long lived dependencies of the server process.
type App struct {
	config   *gconfig.Container[*config.BaseConfig]
	logger   *glog.BaseLogger
	migrate  func(context.Context) error
	db       *bun.DB
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	contacts *contacts.Service
	srv      router.Server[*fiber.App]
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func newApp(ctx context.Context, opts rootOptions) (*App, error) {
	// a missing .env file is not an error
	_ = godotenv.Load(opts.envFiles...)

	level := glog.Info
	if opts.debug {
		level = glog.Trace
	}
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(level),
		glog.WithName("contactsd"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(config.Defaults()).WithLogger(lgr.GetLogger("config"))
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Raw().Validate(); err != nil {
		return nil, err
	}

	return &App{config: cfg, logger: lgr}, nil
}

// WithPersistence opens the database and registers the embedded migrations.
func WithPersistence(ctx context.Context, app *App) error {
	cfg := app.Config()

	driver, dialect := sqliteshim.ShimName, schema.Dialect(sqlitedialect.New())
	if cfg.DriverName() == config.DriverPostgres {
		driver, dialect = "pgx", pgdialect.New()
	}

	db, err := sql.Open(driver, cfg.Persistence.Server)
	if err != nil {
		return err
	}

	persistence.RegisterModel((*directory.Record)(nil))
	persistence.RegisterModel((*contact.Record)(nil))
	persistence.RegisterModel((*activity.LogEntry)(nil))

	client, err := persistence.New(cfg.GetPersistence(), db, dialect)
	if err != nil {
		return err
	}
	client.SetLogger(app.GetLogger("persistence"))

	for _, migrationsFS := range migrations.Filesystems() {
		client.RegisterDialectMigrations(
			migrationsFS,
			persistence.WithDialectSourceLabel("."),
			persistence.WithValidationTargets("postgres", "sqlite"),
		)
	}
	if err := client.ValidateDialects(ctx); err != nil {
		app.GetLogger("persistence").Warn("dialect validation failed", "error", err)
	}

	app.migrate = func(ctx context.Context) error {
		if err := client.Migrate(ctx); err != nil {
			return err
		}
		if report := client.Report(); report != nil && !report.IsZero() {
			app.GetLogger("persistence").Info("migrations applied", "report", report.String())
		}
		return migrations.ValidateSchema(ctx, db, cfg.DriverName(), nil)
	}
	app.db = client.DB()
	return nil
}

// Migrate applies pending migrations.
func Migrate(ctx context.Context, app *App) error {
	return app.migrate(ctx)
}

// WithContactsService builds the repositories and the service facade.
func WithContactsService(_ context.Context, app *App) error {
	users, err := directory.NewRepository(directory.RepositoryConfig{DB: app.db})
	if err != nil {
		return err
	}
	contactRepo, err := contact.NewRepository(contact.RepositoryConfig{DB: app.db})
	if err != nil {
		return err
	}
	logs, err := activity.NewRepository(activity.RepositoryConfig{DB: app.db})
	if err != nil {
		return err
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = telemetry.New(app.registry)

	app.contacts = contacts.New(contacts.Config{
		UserRepository:     users,
		ContactRepository:  contactRepo,
		ActivityRepository: logs,
		FeatureGate:        newConfigGate(app.Config().Features),
		Hooks:              app.metrics.Hooks(types.Hooks{}),
		Logger:             &loggerAdapter{app.GetLogger("contacts")},
	})
	return app.contacts.HealthCheck(context.Background())
}

// WithHTTPServer mounts the API and the metrics endpoint.
func WithHTTPServer(_ context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return fiber.New(fiber.Config{
			UnescapePath:          true,
			StrictRouting:         false,
			DisableStartupMessage: true,
		})
	})
	srv.Router().WithLogger(app.GetLogger("router"))

	paging := app.Config().Paging
	handler := httpapi.New(httpapi.Config{
		Service: app.contacts,
		Logger:  &loggerAdapter{app.GetLogger("http")},
		Metrics: app.metrics,
		Masker:  httpapi.DefaultMasker(),
		Health: func(ctx context.Context) error {
			return app.db.PingContext(ctx)
		},
		DefaultPageSize: paging.DefaultSize,
		MaxPageSize:     paging.MaxSize,
	})
	httpapi.Register(srv.Router(), handler)

	metricsPath := app.Config().Server.MetricsPath
	if metricsPath != "" {
		srv.WrappedRouter().Get(metricsPath, adaptor.HTTPHandler(
			promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}),
		))
	}

	app.srv = srv
	return nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
