package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/planner"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/schedule"
)

const testSecret = "test-secret"

// stubBatch records the invocation and returns a canned result.
type stubBatch struct {
	report  domain.BatchReport
	err     error
	calls   int
	week    string
	trigger string
}

func (s *stubBatch) Run(_ context.Context, week, trigger string) (domain.BatchReport, error) {
	s.calls++
	s.week = week
	s.trigger = trigger

	return s.report, s.err
}

func newTestServer(batch BatchRunner) *Server {
	logger := zerolog.Nop()
	cfg := &config.Config{
		ServerAddr: ":0",
		CronSecret: testSecret,
		Batch: config.BatchConfig{
			Size:            12,
			CandidateLimit:  1000,
			HistoryLookback: 5,
			WeekStartDay:    "monday",
			LeadDays:        1,
		},
	}

	return New(cfg, batch, &logger)
}

func doCron(t *testing.T, s *Server, target, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	s.handleCronTrigger(rec, req)

	return rec
}

func TestCronTriggerRequiresBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "wrong token", header: "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &stubBatch{}
			s := newTestServer(batch)

			rec := doCron(t, s, cronPath, tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, 0, batch.calls)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Unauthorized", resp.Error)
		})
	}
}

func TestCronTriggerRunsBatch(t *testing.T) {
	batch := &stubBatch{report: domain.BatchReport{Processed: 5, Success: 4, Failed: 1, SkippedInvalidEmails: 2}}
	s := newTestServer(batch)

	rec := doCron(t, s, cronPath, "Bearer "+testSecret)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, domain.TriggerCron, batch.trigger)

	var resp cronResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Weekly meal plan generation completed", resp.Message)
	assert.Equal(t, 5, resp.Processed)
	assert.Equal(t, 4, resp.Success)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, resp.SkippedInvalidEmails)
	assert.Equal(t, batch.week, resp.WeekStartDate)
}

func TestCronTriggerDefaultWeekIsLeadShifted(t *testing.T) {
	batch := &stubBatch{}
	s := newTestServer(batch)

	rec := doCron(t, s, cronPath, "Bearer "+testSecret)
	require.Equal(t, http.StatusOK, rec.Code)

	want := schedule.TargetWeekStart(time.Now(), time.Monday, 1).Format(domain.WeekDateFormat)
	assert.Equal(t, want, batch.week)
}

func TestCronTriggerNoUsersMessage(t *testing.T) {
	batch := &stubBatch{report: domain.BatchReport{SkippedInvalidEmails: 3}}
	s := newTestServer(batch)

	rec := doCron(t, s, cronPath, "Bearer "+testSecret)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cronResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "No users to process", resp.Message)
	assert.Equal(t, 3, resp.SkippedInvalidEmails)
}

func TestCronTriggerWeekOverrideSnapsToWeekStart(t *testing.T) {
	batch := &stubBatch{}
	s := newTestServer(batch)

	// 2026-09-02 is a Wednesday; the plan week starts the prior Monday.
	rec := doCron(t, s, cronPath+"?weekStartDate=2026-09-02", "Bearer "+testSecret)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-08-31", batch.week)
}

func TestCronTriggerRejectsUnparseableWeek(t *testing.T) {
	batch := &stubBatch{}
	s := newTestServer(batch)

	rec := doCron(t, s, cronPath+"?weekStartDate=next-next-week", "Bearer "+testSecret)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, batch.calls)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid weekStartDate", resp.Error)
}

func TestCronTriggerConflictWhileBatchRuns(t *testing.T) {
	batch := &stubBatch{err: planner.ErrBatchInProgress}
	s := newTestServer(batch)

	rec := doCron(t, s, cronPath, "Bearer "+testSecret)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Batch already in progress", resp.Error)
}

func TestCronTriggerFatalBatchError(t *testing.T) {
	batch := &stubBatch{err: errors.New("fetch candidate users: connection refused")}
	s := newTestServer(batch)

	rec := doCron(t, s, cronPath, "Bearer "+testSecret)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Failed to generate weekly meal plans", resp.Error)
	assert.Contains(t, resp.Details, "connection refused")
}

func TestCronTriggerMethodNotAllowed(t *testing.T) {
	batch := &stubBatch{}
	s := newTestServer(batch)

	req := httptest.NewRequest(http.MethodPost, cronPath, nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)

	rec := httptest.NewRecorder()
	s.handleCronTrigger(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, batch.calls)
}
