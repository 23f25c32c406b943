package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Knnivedh/job-rec/internal/app"
	"github.com/Knnivedh/job-rec/internal/database/seeder"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedWorkers int
	seedRPS     int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample companies and job postings",
	Long:  "Insert the sample companies and job postings. Postings are embedded when GEMINI_API_KEY is set; rerunning updates existing rows.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedWorkers, "workers", 4, "Concurrent embedding requests")
	seedCmd.Flags().IntVar(&seedRPS, "rps", 5, "Embedding requests per second, 0 for unlimited")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.DatabaseConfigured() {
		return errNoDatabase
	}

	c, err := app.NewContainer(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer func() { _ = c.Close() }()

	if err := migrate(cmd.Context(), c.DB.SQLDB(), "", log); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	jobs := repository.NewPostgresJobRepository(c.DB)
	pool := worker.NewPool(seedWorkers, seedRPS)
	r := seeder.Runner{Seeders: seeder.Defaults(jobs, c.Embedder, pool, log)}
	if err := r.Run(ctx); err != nil {
		return err
	}

	log.Info("[Seed] done", zap.Int("jobs", len(seeder.SampleJobs())))
	return nil
}
