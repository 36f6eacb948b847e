package services

import (
	"context"
	"strings"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type ReportSource interface {
	Summarize(ctx context.Context, f model.ReportFilter) (*model.Report, error)
}

type ReportService struct {
	source ReportSource
}

func NewReportService(source ReportSource) *ReportService {
	return &ReportService{
		source: source,
	}
}

// Summary validates the filter and delegates the aggregation. Period
// is matched case-insensitively.
func (s *ReportService) Summary(ctx context.Context, f model.ReportFilter) (*model.Report, error) {
	f.Period = model.ReportPeriod(strings.ToLower(string(f.Period)))
	switch f.Period {
	case "", model.ReportPeriodDaily, model.ReportPeriodWeekly, model.ReportPeriodMonthly:
	default:
		return nil, validationErr(errInvalidPeriod)
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return nil, validationErr(errInvalidWindow)
	}
	return s.source.Summarize(ctx, f)
}

// ParseReportDate accepts the wire date format used by the report API.
func ParseReportDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
