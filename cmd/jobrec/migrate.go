package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Knnivedh/job-rec/internal/database/migration"
	dbpostgres "github.com/Knnivedh/job-rec/internal/database/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("database is not configured (DB_HOST, DB_NAME, DB_USER)")

var (
	migrateDir    string
	migrateStatus bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  "Apply V<n>__<name>.sql migrations in version order. Without --dir the migrations compiled into the binary are used.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "Directory to read migrations from")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "List migrations and whether they are applied, without applying")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.DatabaseConfigured() {
		return errNoDatabase
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	cancel()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if migrateStatus {
		return printStatus(cmd, db.SQLDB())
	}
	return migrate(cmd.Context(), db.SQLDB(), migrateDir, log)
}

func printStatus(cmd *cobra.Command, db *sql.DB) error {
	states, err := migration.Runner{Dir: migrateDir}.Status(cmd.Context(), db)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, s := range states {
		mark := "pending"
		if s.Applied {
			mark = "applied"
		}
		fmt.Fprintf(out, "V%d\t%-8s\t%s\n", s.Version, mark, s.Name)
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB, dir string, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	r := migration.Runner{Dir: dir, Logger: log}
	if err := r.Run(ctx, db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
