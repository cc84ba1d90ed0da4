// Command ai-jobs-pulse rebuilds the dashboard data artifact: it streams
// government job postings, applies the AI term and job-family rules, attaches
// the optional market lenses, and writes the assembled document to data.json.
// It is a one-shot process intended to run on a schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/workforce-signals/ai-jobs-pulse/internal/aggregate"
	"github.com/workforce-signals/ai-jobs-pulse/internal/config"
	"github.com/workforce-signals/ai-jobs-pulse/internal/logger"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
	"github.com/workforce-signals/ai-jobs-pulse/internal/report"
	"github.com/workforce-signals/ai-jobs-pulse/internal/storage"
	"github.com/workforce-signals/ai-jobs-pulse/internal/telegram"
	"github.com/workforce-signals/ai-jobs-pulse/internal/usajobs"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Credentials may live in a local .env during development; scheduled
	// runs set them directly in the environment.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	runID := uuid.New().String()
	logger.Info("starting run %s (months_back=%d, snapshot_months_back=%d)",
		runID, cfg.USAJobs.MonthsBack, cfg.USAJobs.SnapshotMonthsBack)

	postings := postingSource{
		client: usajobs.NewClient(cfg.USAJobs.APIBaseURL, cfg.USAJobs.PageSize, cfg.USAJobs.Timeout),
	}
	assembler := report.New(postings, report.NewLenses(cfg), cfg.USAJobs.MonthsBack, cfg.USAJobs.SnapshotMonthsBack)

	ctx := context.Background()
	doc, err := assembler.Build(ctx, time.Now(), runID)
	if err != nil {
		logger.Fatal("run %s failed: %v", runID, err)
	}

	writer := storage.NewWriter(cfg.Output.FilePath)

	// Load the outgoing artifact before replacing it so the notification
	// can report the run-over-run change.
	previous, err := writer.LoadPrevious()
	if err != nil {
		logger.Warn("could not read previous report: %v", err)
	}

	if err := writer.Write(doc); err != nil {
		logger.Fatal("run %s failed to write report: %v", runID, err)
	}
	fmt.Printf("Wrote %s (lastUpdated=%s)\n", writer.Path(), doc.LastUpdated)

	notify(cfg, doc, previous)

	logger.Info("run %s completed", runID)
}

// notify sends the optional Telegram run summary. Notification failures are
// logged and swallowed; the artifact is already on disk.
func notify(cfg *config.Config, doc, previous *models.Report) {
	if !cfg.Telegram.Enabled {
		return
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second)
	if err != nil {
		logger.Warn("failed to initialize Telegram client: %v", err)
		return
	}
	if err := client.SendRunSummary(doc, previous); err != nil {
		logger.Warn("failed to send Telegram notification: %v", err)
		return
	}
	logger.Info("sent Telegram run summary")
}

// postingSource adapts the USAJOBS client to the aggregate.PostingSource
// contract.
type postingSource struct {
	client *usajobs.Client
}

func (p postingSource) Postings(ctx context.Context, start, end time.Time) aggregate.Stream {
	return p.client.Postings(ctx, start, end)
}
