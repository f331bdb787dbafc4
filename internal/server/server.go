// Package server exposes the HTTP trigger surface for the weekly plan
// batch: a bearer-authenticated cron endpoint with request logging and
// graceful shutdown.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	coreerrors "github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/errors"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/planner"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/observability"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/schedule"
)

const (
	cronPath = "/api/cron/weekly-meal-plans"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// BatchRunner runs one plan batch for a target week.
type BatchRunner interface {
	Run(ctx context.Context, weekStartDate, trigger string) (domain.BatchReport, error)
}

// Compile-time assertion that *planner.Planner implements BatchRunner.
var _ BatchRunner = (*planner.Planner)(nil)

// Server is the batch trigger API.
type Server struct {
	cfg          *config.Config
	batch        BatchRunner
	weekStartDay time.Weekday
	logger       *zerolog.Logger
}

func New(cfg *config.Config, batch BatchRunner, logger *zerolog.Logger) *Server {
	weekStartDay, err := schedule.ParseWeekday(cfg.Batch.WeekStartDay)
	if err != nil {
		logger.Warn().Err(err).Str("week_start_day", cfg.Batch.WeekStartDay).Msg("invalid week start day, using monday")

		weekStartDay = time.Monday
	}

	return &Server{
		cfg:          cfg,
		batch:        batch,
		weekStartDay: weekStartDay,
		logger:       logger,
	}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(cronPath, s.handleCronTrigger)

	srv := &http.Server{
		Addr:              s.cfg.ServerAddr,
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		//nolint:errcheck,contextcheck // shutdown in signal handler is best-effort, non-inherited context intentional
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", s.cfg.ServerAddr).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

type cronResponse struct {
	Message              string `json:"message"`
	Processed            int    `json:"processed"`
	Success              int    `json:"success"`
	Failed               int    `json:"failed"`
	SkippedInvalidEmails int    `json:"skippedInvalidEmails"`
	WeekStartDate        string `json:"weekStartDate"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleCronTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")

		return
	}

	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "")

		return
	}

	week, err := s.resolveWeek(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekStartDate", err.Error())

		return
	}

	report, err := s.batch.Run(r.Context(), week, domain.TriggerCron)

	switch {
	case errors.Is(err, planner.ErrBatchInProgress):
		writeError(w, http.StatusConflict, "Batch already in progress", "")

		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to generate weekly meal plans", err.Error())

		return
	}

	message := "Weekly meal plan generation completed"
	if report.Processed == 0 {
		message = "No users to process"
	}

	writeJSON(w, http.StatusOK, cronResponse{
		Message:              message,
		Processed:            report.Processed,
		Success:              report.Success,
		Failed:               report.Failed,
		SkippedInvalidEmails: report.SkippedInvalidEmails,
		WeekStartDate:        week,
	})
}

func (s *Server) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.CronSecret)) == 1
}

// resolveWeek picks the target week: an explicit weekStartDate query
// param is parsed leniently and snapped to the configured week start;
// absent, the default is the week containing now plus the lead days.
func (s *Server) resolveWeek(r *http.Request) (string, error) {
	raw := r.URL.Query().Get("weekStartDate")
	if raw == "" {
		week := schedule.TargetWeekStart(time.Now(), s.weekStartDay, s.cfg.Batch.LeadDays)

		return week.Format(domain.WeekDateFormat), nil
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", coreerrors.ErrInvalidWeekDate, raw)
	}

	return schedule.WeekStartOf(t, s.weekStartDay).Format(domain.WeekDateFormat), nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		if r.URL.Path == cronPath {
			observability.CronRequests.WithLabelValues(strconv.Itoa(rec.status)).Inc()
		}

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(started)).
			Msg("http request")
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
