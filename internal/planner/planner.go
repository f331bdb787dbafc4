// Package planner implements the weekly meal-plan generation batch:
// candidate selection, eligibility filtering, history summarization,
// prompt assembly, model invocation, response parsing, and idempotent
// persistence of the resulting plans.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/llm"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/observability"
	db "github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/storage"
)

// ErrBatchInProgress reports that another invocation holds the batch
// advisory lock for this process or a sibling instance.
var ErrBatchInProgress = errors.New("batch already in progress")

// Notifier receives batch completion events. Implementations must not
// block longer than a notification send reasonably takes; failures are
// logged by the planner and never affect the batch result.
type Notifier interface {
	BatchCompleted(ctx context.Context, weekStartDate string, report domain.BatchReport) error
}

// Planner drives one batch invocation end to end. All collaborators are
// injected; the planner holds no global state.
type Planner struct {
	cfg       *config.Config
	database  Repository
	llmClient llm.Client
	cuisines  CuisineCatalog
	notifier  Notifier
	logger    *zerolog.Logger
}

func New(cfg *config.Config, database Repository, llmClient llm.Client, cuisines CuisineCatalog, logger *zerolog.Logger) *Planner {
	return &Planner{
		cfg:       cfg,
		database:  database,
		llmClient: llmClient,
		cuisines:  cuisines,
		logger:    logger,
	}
}

// SetNotifier sets the optional batch completion notifier.
func (p *Planner) SetNotifier(n Notifier) {
	p.notifier = n
}

// Run executes one batch invocation for the given week. Only a failure
// to fetch the candidate page (or a concurrently held batch lock) is
// returned as an error; every per-user problem is absorbed into the
// report counters. trigger names the invocation source for the audit
// record and metrics.
func (p *Planner) Run(ctx context.Context, weekStartDate, trigger string) (domain.BatchReport, error) {
	correlationID := uuid.New().String()
	logger := p.logger.With().
		Str(LogFieldCorrelationID, correlationID).
		Str(LogFieldWeekStart, weekStartDate).
		Str(LogFieldTrigger, trigger).
		Logger()

	acquired, err := p.database.TryAcquireAdvisoryLock(ctx, db.BatchLockID)
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("acquire batch lock: %w", err)
	}

	if !acquired {
		logger.Info().Msg("batch lock held elsewhere, skipping run")

		return domain.BatchReport{}, ErrBatchInProgress
	}

	defer func() {
		if err := p.database.ReleaseAdvisoryLock(ctx, db.BatchLockID); err != nil {
			logger.Warn().Err(err).Msg("failed to release batch lock")
		}
	}()

	logger.Info().Msg("starting plan batch")

	started := time.Now()
	report, err := p.runBatch(ctx, &logger, weekStartDate)
	observability.BatchDurationSeconds.Observe(time.Since(started).Seconds())

	if err != nil {
		observability.BatchRuns.WithLabelValues(StatusError, trigger).Inc()

		return report, err
	}

	observability.BatchRuns.WithLabelValues(StatusOK, trigger).Inc()
	p.recordRun(ctx, &logger, weekStartDate, trigger, report, started)
	p.notifyCompleted(ctx, &logger, weekStartDate, report)

	logger.Info().
		Int(LogFieldProcessed, report.Processed).
		Int(LogFieldSuccess, report.Success).
		Int(LogFieldFailed, report.Failed).
		Int(LogFieldInvalidEmails, report.SkippedInvalidEmails).
		Msg("plan batch complete")

	return report, nil
}

// runSettings are the per-run knobs, seeded from configuration and
// overridable through app_settings rows.
type runSettings struct {
	batchSize       int
	candidateLimit  int
	historyLookback int
}

func (p *Planner) loadRunSettings(ctx context.Context, logger *zerolog.Logger) runSettings {
	settings := runSettings{
		batchSize:       p.cfg.Batch.Size,
		candidateLimit:  p.cfg.Batch.CandidateLimit,
		historyLookback: p.cfg.Batch.HistoryLookback,
	}

	if err := p.database.GetSetting(ctx, db.SettingBatchSize, &settings.batchSize); err != nil {
		logger.Debug().Err(err).Msg("could not get plan_batch_size from DB, using default")
	}

	if err := p.database.GetSetting(ctx, db.SettingCandidateLimit, &settings.candidateLimit); err != nil {
		logger.Debug().Err(err).Msg("could not get plan_candidate_limit from DB, using default")
	}

	if err := p.database.GetSetting(ctx, db.SettingHistoryLookback, &settings.historyLookback); err != nil {
		logger.Debug().Err(err).Msg("could not get plan_history_lookback from DB, using default")
	}

	return settings
}

func (p *Planner) runBatch(ctx context.Context, logger *zerolog.Logger, weekStartDate string) (domain.BatchReport, error) {
	settings := p.loadRunSettings(ctx, logger)

	var report domain.BatchReport

	users, err := p.database.FetchOnboardedUsers(ctx, settings.candidateLimit)
	if err != nil {
		return report, fmt.Errorf("fetch candidate users: %w", err)
	}

	observability.CandidatePoolSize.Set(float64(len(users)))
	logger.Info().Int(LogFieldCandidates, len(users)).Msg("fetched candidate users")

	for i := range users {
		// Hard cap per invocation, tied to the upstream per-minute
		// quota. A full user base is covered across repeated runs.
		if report.Processed >= settings.batchSize {
			logger.Info().Int(LogFieldProcessed, report.Processed).Msg("batch size reached, stopping")

			break
		}

		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch interrupted: %w", err)
		}

		p.processUser(ctx, logger, &users[i], weekStartDate, settings, &report)
	}

	return report, nil
}

// processUser takes one candidate to a terminal state: skipped, failed,
// or success. Errors never propagate; they are logged and counted so the
// batch continues with the next user.
func (p *Planner) processUser(ctx context.Context, logger *zerolog.Logger, user *domain.User, weekStartDate string, settings runSettings, report *domain.BatchReport) {
	userLogger := logger.With().Str(LogFieldUserID, user.ID).Logger()

	history, result, err := p.evaluate(ctx, user, weekStartDate, settings.historyLookback)
	if err != nil {
		userLogger.Error().Err(err).Msg("eligibility evaluation failed")
		report.Processed++
		report.Failed++
		observability.UsersProcessed.WithLabelValues(StatusFailed).Inc()

		return
	}

	if !result.Eligible {
		if result.SkipReason == SkipInvalidEmail {
			report.SkippedInvalidEmails++
		}

		observability.UsersSkipped.WithLabelValues(result.SkipReason).Inc()
		userLogger.Debug().Str(LogFieldReason, result.SkipReason).Msg("user skipped")

		return
	}

	report.Processed++

	if err := p.generateForUser(ctx, &userLogger, user, history, weekStartDate); err != nil {
		userLogger.Error().Err(err).Msg("plan generation failed")
		report.Failed++
		observability.UsersProcessed.WithLabelValues(StatusFailed).Inc()

		return
	}

	report.Success++
	observability.UsersProcessed.WithLabelValues(StatusSuccess).Inc()
}

// generateForUser runs the per-user pipeline: refresh the profile,
// normalize, summarize history, build the prompt, call the model, parse,
// and persist. The candidate page can be minutes stale by the time a
// user's turn comes, so preferences are re-read just before generation.
func (p *Planner) generateForUser(ctx context.Context, logger *zerolog.Logger, user *domain.User, history []domain.WeeklyMealPlan, weekStartDate string) error {
	fresh, err := p.database.UserByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("refresh user: %w", err)
	}

	prefs := Normalize(*fresh)
	historyText := SummarizeHistory(history, prefs.EnabledMealTypes)
	prompt := BuildPrompt(prefs, historyText, weekStartDate, p.cuisines)

	raw, err := p.llmClient.GeneratePlan(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generate plan: %w", err)
	}

	meals, err := ParsePlanResponse(raw, prefs.EnabledMealTypes)
	if err != nil {
		return fmt.Errorf("parse plan response: %w", err)
	}

	plan := &domain.WeeklyMealPlan{
		UserID:        user.ID,
		WeekStartDate: weekStartDate,
		Meals:         meals,
		AIGenerated:   true,
		GeneratedAt:   time.Now(),
	}

	written, err := p.database.SaveMealPlan(ctx, plan)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	if !written {
		logger.Info().Msg("plan already existed, insert skipped")

		return nil
	}

	observability.PlansWritten.Inc()
	logger.Info().Msg("weekly plan saved")

	return nil
}

func (p *Planner) recordRun(ctx context.Context, logger *zerolog.Logger, weekStartDate, trigger string, report domain.BatchReport, started time.Time) {
	run := &domain.BatchRun{
		ID:            uuid.New().String(),
		WeekStartDate: weekStartDate,
		Trigger:       trigger,
		Report:        report,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}

	if err := p.database.RecordBatchRun(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("failed to record batch run")
	}
}

func (p *Planner) notifyCompleted(ctx context.Context, logger *zerolog.Logger, weekStartDate string, report domain.BatchReport) {
	if p.notifier == nil {
		return
	}

	if err := p.notifier.BatchCompleted(ctx, weekStartDate, report); err != nil {
		logger.Warn().Err(err).Msg("failed to send batch notification")
	}
}
