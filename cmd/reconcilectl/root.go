package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/database"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/version"
)

type rootOptions struct {
	dbPath   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "reconcilectl",
		Short:        "Reconcile brokerage exports against stored holdings",
		Version:      fmt.Sprintf("%s (%s)", version.Version, version.Commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetFormatter(&logrus.TextFormatter{})
			lvl, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			logger.SetLevel(lvl)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	dbDefault := os.Getenv("DB_PATH")
	if dbDefault == "" {
		dbDefault = "./data/holdings.db"
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", dbDefault, "path to the SQLite database")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newUserCmd(opts),
		newSimulateCmd(opts),
		newAuditCmd(opts),
	)

	return cmd
}

// openDB opens the database and refuses to continue while migrations are pending.
func openDB(ctx context.Context, opts *rootOptions) (*sql.DB, error) {
	db, err := database.Open(opts.dbPath)
	if err != nil {
		return nil, err
	}
	pending, err := database.HasPendingMigrations(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if pending {
		db.Close()
		return nil, fmt.Errorf("database %s has pending migrations, run `reconcilectl migrate` first", opts.dbPath)
	}
	return db, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
