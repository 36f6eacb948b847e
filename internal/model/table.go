package model

// TableQuery is a server-side data table request as sent by the admin
// UI (DataTables protocol): offset paging, one optional sort column and
// a free-text search term applied to the entity's searchable columns.
type TableQuery struct {
	Draw        int     // echoed back unchanged
	Start       int     // zero-based row offset
	Length      int     // page size
	Search      string  // substring filter, case-insensitive
	OrderColumn *int    // index into the entity's column list, nil means default sort
	OrderDesc   bool
}

// Normalize clamps offsets into valid range. The column index is
// clamped later against the entity's column list.
func (q *TableQuery) Normalize() {
	if q.Start < 0 {
		q.Start = 0
	}
	if q.Length < 0 {
		q.Length = 0
	}
}

// TableResult is the response envelope shared by all table endpoints.
type TableResult struct {
	Draw            int         `json:"draw"`
	RecordsTotal    int64       `json:"recordsTotal"`
	RecordsFiltered int64       `json:"recordsFiltered"`
	Data            interface{} `json:"data"`
}

// Projected rows. Optional fields render as empty strings, never null,
// and timestamps are pre-formatted for display.

type BookRow struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear string `json:"published_year"`
	Copies        int    `json:"copies"`
	CreatedAt     string `json:"created_at"`
}

type UserRow struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullname"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CustomerRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"acc_id"`
	UserID    string `json:"user_id"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type GameRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type BankRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TransactionRow inlines the related display names so the listing needs
// no extra round trips.
type TransactionRow struct {
	ID           int64   `json:"id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	BankStorage  string  `json:"bank_stor"`
	Type         int     `json:"type"`
	CustomerName string  `json:"customer_name"`
	BankName     string  `json:"bank_name"`
	GameName     string  `json:"game_name"`
	CreatedBy    string  `json:"created_by"`
	CreatedAt    string  `json:"created_at"`
}
