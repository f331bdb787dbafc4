package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name   string
		week   string
		report domain.BatchReport
		want   string
	}{
		{
			name: "full batch",
			week: "2026-08-31",
			report: domain.BatchReport{
				Processed:            12,
				Success:              10,
				Failed:               2,
				SkippedInvalidEmails: 3,
			},
			want: "Weekly plan batch for 2026-08-31: processed 12, success 10, failed 2, invalid emails 3",
		},
		{
			name:   "empty batch",
			week:   "2026-09-07",
			report: domain.BatchReport{},
			want:   "Weekly plan batch for 2026-09-07: processed 0, success 0, failed 0, invalid emails 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSummary(tt.week, tt.report))
		})
	}
}

func TestNoopBatchCompleted(t *testing.T) {
	n := NewNoop()

	require.NoError(t, n.BatchCompleted(context.Background(), "2026-08-31", domain.BatchReport{Processed: 5}))
}
