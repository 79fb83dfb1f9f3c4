// Command contactsd serves the contacts API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
	debug    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "contactsd",
		Short:         "Users, contacts and activity log API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading configuration")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts))
	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var skipMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := newApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := WithPersistence(ctx, app); err != nil {
				return err
			}
			if !skipMigrate {
				if err := Migrate(ctx, app); err != nil {
					return err
				}
			}
			if err := WithContactsService(ctx, app); err != nil {
				return err
			}
			if err := WithHTTPServer(ctx, app); err != nil {
				return err
			}

			addr := app.Config().GetServer().Addr()
			app.GetLogger("app").Info("starting server", "addr", addr)
			app.srv.Serve(addr)

			sig := WaitExitSignal()
			app.GetLogger("app").Info("shutting down", "signal", sig.String())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on start")
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := newApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := WithPersistence(ctx, app); err != nil {
				return err
			}
			return Migrate(ctx, app)
		},
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
