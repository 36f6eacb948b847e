package services

import (
	"context"
	"testing"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportSource struct {
	got    model.ReportFilter
	report *model.Report
}

func (s *stubReportSource) Summarize(ctx context.Context, f model.ReportFilter) (*model.Report, error) {
	s.got = f
	return s.report, nil
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("valid periods pass through", func(t *testing.T) {
		for _, period := range append([]string{""}, fixtures.ValidPeriods...) {
			src := &stubReportSource{report: &model.Report{Period: model.ReportPeriod(period)}}
			svc := NewReportService(src)

			_, err := svc.Summary(ctx, model.ReportFilter{Period: model.ReportPeriod(period)})
			require.NoError(t, err, "period %q", period)
		}
	})

	t.Run("period is case-insensitive", func(t *testing.T) {
		for _, period := range []string{"Daily", "WEEKLY", "Monthly"} {
			src := &stubReportSource{report: &model.Report{}}
			svc := NewReportService(src)

			_, err := svc.Summary(ctx, model.ReportFilter{Period: model.ReportPeriod(period)})
			require.NoError(t, err, "period %q", period)
		}
	})

	t.Run("unknown period rejected", func(t *testing.T) {
		svc := NewReportService(&stubReportSource{})

		_, err := svc.Summary(ctx, model.ReportFilter{Period: "hourly"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		svc := NewReportService(&stubReportSource{})

		_, err := svc.Summary(ctx, model.ReportFilter{
			Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
			End:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("open-ended window allowed", func(t *testing.T) {
		src := &stubReportSource{report: &model.Report{}}
		svc := NewReportService(src)

		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
		_, err := svc.Summary(ctx, model.ReportFilter{Start: start})
		require.NoError(t, err)
		assert.Equal(t, start, src.got.Start)
	})
}

func TestParseReportDate(t *testing.T) {
	d, err := ParseReportDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), d)

	_, err = ParseReportDate("10/03/2025")
	assert.Error(t, err)
}
