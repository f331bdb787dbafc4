// Package app provides the main application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Serve mode: HTTP server exposing the cron trigger endpoint
//   - Batch mode: weekly plan generation, one-shot or on the in-process
//     scheduler
//
// Each mode can be run independently based on deployment needs.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/catalog"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/llm"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/notify"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/planner"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/observability"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/schedule"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/worker"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/server"
	db "github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/storage"
)

const (
	errLLMInit    = "llm client init: %w"
	schedulerName = "weekly-plan-scheduler"

	logFieldWeekStart = "week_start"
)

// ErrSchedulerDisabled is returned when batch mode is started without -once
// while the in-process scheduler is turned off.
var ErrSchedulerDisabled = errors.New("scheduler disabled: set SCHEDULER_ENABLED=true or run with -once")

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		database: database,
		logger:   logger,
	}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	srv := observability.NewServer(a.database, a.cfg.HealthPort, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("health server start: %w", err)
	}

	return nil
}

// RunServer runs the HTTP mode serving the cron trigger endpoint.
func (a *App) RunServer(ctx context.Context) error {
	a.logger.Info().Msg("Starting server mode")

	p, llmClient, err := a.newPlanner(ctx)
	if err != nil {
		return err
	}
	defer a.closeLLMClient(llmClient)

	srv := server.New(a.cfg, p, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server run: %w", err)
	}

	return nil
}

// RunBatch runs the batch mode. With once set it generates plans for the
// upcoming week immediately and exits; otherwise it runs the in-process
// weekly scheduler loop.
func (a *App) RunBatch(ctx context.Context, once bool) error {
	a.logger.Info().Bool("once", once).Msg("Starting batch mode")

	p, llmClient, err := a.newPlanner(ctx)
	if err != nil {
		return err
	}
	defer a.closeLLMClient(llmClient)

	if once {
		return a.runBatchOnce(ctx, p)
	}

	if !a.cfg.Scheduler.Enabled {
		return ErrSchedulerDisabled
	}

	return a.runScheduler(ctx, p)
}

func (a *App) runBatchOnce(ctx context.Context, p *planner.Planner) error {
	week := a.targetWeek(time.Now())

	report, err := p.Run(ctx, week, domain.TriggerManual)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	a.logBatchReport(week, report).Msg("batch completed")

	return nil
}

// runScheduler polls until the configured weekday and hour arrive, then
// fires one batch. The grace period in the weekly gate prevents re-firing
// within the same window; the advisory lock inside the planner keeps
// concurrent instances safe.
func (a *App) runScheduler(ctx context.Context, p *planner.Planner) error {
	day, err := schedule.ParseWeekday(a.cfg.Scheduler.Day)
	if err != nil {
		return fmt.Errorf("scheduler day: %w", err)
	}

	if err := schedule.ValidateHour(a.cfg.Scheduler.Hour); err != nil {
		return fmt.Errorf("scheduler hour: %w", err)
	}

	lastRun := a.loadLastRun(ctx)

	return worker.Loop(ctx, worker.Config{
		Name:         schedulerName,
		PollInterval: a.cfg.Scheduler.PollInterval,
		Logger:       a.logger,
		Process: func(ctx context.Context) error {
			// A panicking batch must not take down the loop.
			defer worker.RecoverPanic(a.logger, schedulerName)

			now := time.Now()
			if !worker.ShouldRunWeekly(now, day, a.cfg.Scheduler.Hour, lastRun, 0) {
				return nil
			}

			week := a.targetWeek(now)

			report, err := p.Run(ctx, week, domain.TriggerScheduler)
			if err != nil {
				if errors.Is(err, planner.ErrBatchInProgress) {
					a.logger.Info().Str(logFieldWeekStart, week).Msg("batch already in progress, skipping scheduled run")

					return nil
				}

				return fmt.Errorf("scheduled batch: %w", err)
			}

			lastRun = now
			a.saveLastRun(ctx, now)

			a.logBatchReport(week, report).Msg("scheduled batch completed")

			return nil
		},
	})
}

// loadLastRun seeds the weekly gate anchor. The saved setting is preferred;
// the batch_runs audit table covers instances that never saved one.
func (a *App) loadLastRun(ctx context.Context) time.Time {
	var lastRun time.Time
	if err := a.database.GetSetting(ctx, db.SettingSchedulerLastRun, &lastRun); err == nil && !lastRun.IsZero() {
		return lastRun
	}

	run, err := a.database.LastBatchRun(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load last batch run")

		return time.Time{}
	}

	if run == nil {
		return time.Time{}
	}

	return run.FinishedAt
}

func (a *App) saveLastRun(ctx context.Context, t time.Time) {
	if err := a.database.SaveSetting(ctx, db.SettingSchedulerLastRun, t); err != nil {
		a.logger.Warn().Err(err).Msg("failed to save scheduler last run")
	}
}

func (a *App) logBatchReport(week string, report domain.BatchReport) *zerolog.Event {
	return a.logger.Info().
		Str(logFieldWeekStart, week).
		Int("processed", report.Processed).
		Int("success", report.Success).
		Int("failed", report.Failed).
		Int("skipped_invalid_emails", report.SkippedInvalidEmails)
}

func (a *App) targetWeek(now time.Time) string {
	return schedule.TargetWeekStart(now, a.weekStartDay(), a.cfg.Batch.LeadDays).Format(domain.WeekDateFormat)
}

func (a *App) weekStartDay() time.Weekday {
	day, err := schedule.ParseWeekday(a.cfg.Batch.WeekStartDay)
	if err != nil {
		a.logger.Warn().Err(err).Str("week_start_day", a.cfg.Batch.WeekStartDay).Msg("invalid week start day, using monday")

		return time.Monday
	}

	return day
}

// newPlanner creates the batch planner with its generation client, cuisine
// catalog, and ops notifier. The caller owns closing the returned client.
func (a *App) newPlanner(ctx context.Context) (*planner.Planner, llm.Client, error) {
	llmClient, err := llm.New(ctx, &a.cfg.LLM, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf(errLLMInit, err)
	}

	p := planner.New(a.cfg, a.database, llmClient, catalog.New(), a.logger)
	p.SetNotifier(a.newNotifier())

	return p, llmClient, nil
}

func (a *App) newNotifier() planner.Notifier {
	if a.cfg.Notifier.TelegramBotToken == "" || a.cfg.Notifier.TelegramChatID == 0 {
		return notify.NewNoop()
	}

	tg, err := notify.NewTelegram(a.cfg.Notifier, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("telegram notifier init failed, notifications disabled")

		return notify.NewNoop()
	}

	return tg
}

func (a *App) closeLLMClient(c llm.Client) {
	if err := c.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("closing llm client")
	}
}
