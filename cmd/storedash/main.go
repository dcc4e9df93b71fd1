// Command storedash is the application entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huyvng/storedash/app/jobs"
	"github.com/huyvng/storedash/config"
	"github.com/huyvng/storedash/database/seeders"
	"github.com/huyvng/storedash/internal/server"
	"github.com/huyvng/storedash/pkg/database"
)

func main() {
	root := &cobra.Command{
		Use:   "storedash",
		Short: "E-commerce back-office API",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API server",
			RunE: func(_ *cobra.Command, _ []string) error {
				return server.Start()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Seed the database with an admin user and starter catalog data",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := config.Load(); err != nil {
					return err
				}
				ctx := cmd.Context()
				db, err := database.Connect(ctx)
				if err != nil {
					return err
				}
				defer database.Disconnect(context.Background(), db) //nolint:errcheck

				if err := database.EnsureIndexes(ctx, db); err != nil {
					return err
				}
				fmt.Println("Seeding database:")
				return seeders.RunAll(ctx, db)
			},
		},
		&cobra.Command{
			Use:   "work",
			Short: "Run queue workers without the HTTP server",
			RunE: func(_ *cobra.Command, _ []string) error {
				if err := config.Load(); err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				db, err := database.Connect(ctx)
				if err != nil {
					return err
				}
				defer database.Disconnect(context.Background(), db) //nolint:errcheck

				// Standalone workers have no dashboard connections to
				// broadcast to; jobs still need their registrations.
				jobs.Configure(nil)
				server.StartQueue(ctx, db)

				<-ctx.Done()
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
