// Package app initializes and runs the report pipeline: fetch the
// roster's activity from the document store, aggregate it, and write the
// Markdown and spreadsheet artifacts.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/patientwatch/internal/analyze"
	"github.com/dmitrijs2005/patientwatch/internal/common"
	"github.com/dmitrijs2005/patientwatch/internal/config"
	"github.com/dmitrijs2005/patientwatch/internal/filex"
	"github.com/dmitrijs2005/patientwatch/internal/logging"
	"github.com/dmitrijs2005/patientwatch/internal/report"
	"github.com/dmitrijs2005/patientwatch/internal/roster"
	"github.com/dmitrijs2005/patientwatch/internal/store"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	store      *store.FirestoreStore
	aggregator *analyze.Aggregator
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, cfg.Verbose).With("run_id", uuid.NewString())

	if _, err := os.Stat(cfg.CredentialPath); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorMissingCredential, cfg.CredentialPath)
	}

	st, err := store.NewFirestoreStore(ctx, cfg.CredentialPath)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	aggregator := analyze.NewAggregator(roster.NewFetcher(st), roster.NewDirectory(st), logger)

	return &App{config: cfg, logger: logger, store: st, aggregator: aggregator}, nil
}

// Run executes one full pipeline pass. Per-user fetch failures degrade to
// empty results inside the aggregator; only artifact writing can fail
// here.
func (app *App) Run(ctx context.Context) error {
	today := civil.DateOf(time.Now())

	app.logger.Info(ctx, "starting analysis",
		"users", len(app.config.Emails),
		"start_date", app.config.StartDate.String(),
		"today", today.String())

	snap := app.aggregator.Run(ctx, app.config.Emails)

	policy := analyze.FollowupPolicy{
		FollowupWeeks:    app.config.FollowupWeeks,
		OnboardingDays:   app.config.OnboardingDays,
		WeightWindowDays: app.config.WeightWindowDays,
	}
	cohorts := policy.Cohorts(snap, app.config.Emails, today)

	markdown := report.RenderMarkdown(snap, app.config.Emails, app.config.Exclude,
		cohorts, policy, app.config.StartDate, today)
	if err := filex.WriteText(app.config.MarkdownPath, markdown); err != nil {
		return fmt.Errorf("markdown artifact: %w", err)
	}
	app.logger.Info(ctx, "markdown report written", "path", app.config.MarkdownPath)

	rows := report.BuildRows(snap, app.config.Emails, app.config.StartDate, today)
	excelPath, err := filex.EnsureParentDir(app.config.ExcelPath)
	if err != nil {
		return fmt.Errorf("spreadsheet artifact: %w", err)
	}
	if err := report.WriteWorkbook(excelPath, rows, cohorts, snap.Names); err != nil {
		return fmt.Errorf("spreadsheet artifact: %w", err)
	}
	app.logger.Info(ctx, "workbook written", "path", excelPath)

	return nil
}

// Close releases the store client.
func (app *App) Close() error {
	return app.store.Close()
}
