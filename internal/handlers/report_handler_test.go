package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type stubReportService struct {
	got    model.ReportFilter
	report *model.Report
}

func (s *stubReportService) Summary(ctx context.Context, f model.ReportFilter) (*model.Report, error) {
	s.got = f
	return s.report, nil
}

func TestParseReportFilter(t *testing.T) {
	t.Run("user_id filters by owner", func(t *testing.T) {
		ctx := setupTestContext("GET", "/reports/api/summary?user_id=5&period=daily", nil)

		f, err := parseReportFilter(ctx)
		require.NoError(t, err)
		require.NotNil(t, f.UserID)
		assert.Equal(t, "5", *f.UserID)
		assert.Equal(t, model.ReportPeriodDaily, f.Period)
	})

	t.Run("full filter", func(t *testing.T) {
		ctx := setupTestContext("GET",
			"/reports/api/summary?period=monthly&start=2025-03-01&end=2025-03-31&customer_id=1&bank_id=2&game_id=3&type=1", nil)

		f, err := parseReportFilter(ctx)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), f.Start)
		assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local), f.End)
		require.NotNil(t, f.CustomerID)
		assert.Equal(t, int64(1), *f.CustomerID)
		require.NotNil(t, f.BankID)
		require.NotNil(t, f.GameID)
		require.NotNil(t, f.Type)
		assert.Equal(t, 1, *f.Type)
	})

	t.Run("malformed date is a client error", func(t *testing.T) {
		ctx := setupTestContext("GET", "/reports/api/summary?start=03/01/2025", nil)

		_, err := parseReportFilter(ctx)
		assert.Error(t, err)
	})

	t.Run("malformed id is a client error", func(t *testing.T) {
		ctx := setupTestContext("GET", "/reports/api/summary?customer_id=alice", nil)

		_, err := parseReportFilter(ctx)
		assert.Error(t, err)
	})
}

func TestReportHandler_Summary(t *testing.T) {
	src := &stubReportService{report: &model.Report{Period: model.ReportPeriodDaily, TotalCount: 2}}
	h := NewReportHandler(src)

	ctx := setupTestContext("GET", "/reports/api/summary?user_id=7&period=daily", nil)
	h.Summary(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.NotNil(t, src.got.UserID)
	assert.Equal(t, "7", *src.got.UserID)
}
