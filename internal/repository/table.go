package repository

import (
	"strings"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"gorm.io/gorm"
)

// TableSpec is the fixed, per-entity configuration of the table query
// engine: the ordered column list the client indexes into, the subset
// of columns eligible for substring search, and the sort applied when
// the client sends no order. Resolved at compile time, one spec per
// entity, no reflection.
type TableSpec struct {
	Columns      []string
	Searchable   []string
	DefaultOrder string
	IDColumn     string // tie-break column, "id" unless the query is aliased
}

// OrderClause maps the client's column index onto a SQL order clause.
// Out-of-range indices clamp into bounds, the identity column is always
// appended as a secondary key so pages stay deterministic.
func (s TableSpec) OrderClause(q model.TableQuery) string {
	idCol := s.IDColumn
	if idCol == "" {
		idCol = "id"
	}
	if q.OrderColumn == nil {
		return s.DefaultOrder + ", " + idCol + " ASC"
	}
	idx := *q.OrderColumn
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.Columns)-1 {
		idx = len(s.Columns) - 1
	}
	dir := "ASC"
	if q.OrderDesc {
		dir = "DESC"
	}
	return s.Columns[idx] + " " + dir + ", " + idCol + " ASC"
}

// ApplySearch ORs a case-insensitive substring match across the
// searchable columns. LOWER/LIKE instead of ILIKE so the same clause
// runs on postgres and the sqlite test harness.
func (s TableSpec) ApplySearch(q *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(s.Searchable) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(search) + "%"

	var sb strings.Builder
	args := make([]interface{}, 0, len(s.Searchable))
	for i, col := range s.Searchable {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString("LOWER(" + col + ") LIKE ?")
		args = append(args, pattern)
	}
	return q.Where(sb.String(), args...)
}
