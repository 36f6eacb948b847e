package model

import "time"

type ReportPeriod string

const (
	ReportPeriodDaily   ReportPeriod = "daily"
	ReportPeriodWeekly  ReportPeriod = "weekly"
	ReportPeriodMonthly ReportPeriod = "monthly"
)

// ReportFilter selects the transactions to aggregate. Start/End are
// inclusive dates; End is turned into an exclusive upper bound inside
// the aggregator. Nil filters are skipped.
type ReportFilter struct {
	Start      time.Time
	End        time.Time
	Period     ReportPeriod
	UserID     *string
	CustomerID *int64
	BankID     *int64
	GameID     *int64
	Type       *int
}

type ReportRow struct {
	Bucket string  `json:"bucket"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type Report struct {
	Period      ReportPeriod `json:"period"`
	Start       string       `json:"start"`
	End         string       `json:"end"`
	TotalCount  int64        `json:"total_count"`
	TotalAmount float64      `json:"total_amount"`
	Rows        []ReportRow  `json:"rows"`
}

// DashboardStats is the cached landing page summary.
type DashboardStats struct {
	TotalCustomers     int64          `json:"total_customers"`
	TotalBooked        int64          `json:"total_booked"`
	TotalUsers         int64          `json:"total_users"`
	LatestTransactions []*Transaction `json:"latest_transactions"`
}
