package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"gorm.io/gorm"
)

// transactionTable qualifies every column because the listing joins the
// customer, bank and game tables to inline their display names.
var transactionTable = TableSpec{
	Columns: []string{
		"t.id", "t.amount", "t.currency", "t.bank_stor", "t.type",
		"customer_name", "bank_name", "game_name", "t.created_by", "t.created_at",
	},
	Searchable:   []string{"t.currency", "t.bank_stor", "c.name", "b.name", "g.name"},
	DefaultOrder: "t.created_at DESC",
	IDColumn:     "t.id",
}

const transactionRowSelect = "t.id, t.amount, t.currency, t.bank_stor, t.type, " +
	"c.name AS customer_name, b.name AS bank_name, g.name AS game_name, " +
	"t.created_by, t.created_at"

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(tx)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var entity TransactionEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, p *model.TransactionUpdateRequest, updatedBy string) (*model.Transaction, error) {
	var entity TransactionEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.Amount != nil {
		entity.Amount = *p.Amount
	}
	if p.Currency != nil {
		entity.Currency = *p.Currency
	}
	if p.BankStorage != nil {
		entity.BankStorage = *p.BankStorage
	}
	if p.Type != nil {
		entity.Type = *p.Type
	}
	entity.UpdatedBy = updatedBy

	if err := r.Write(ctx).WithContext(ctx).Save(&entity).Error; err != nil {
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&TransactionEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) joined(ctx context.Context) *gorm.DB {
	return r.Read(ctx).WithContext(ctx).
		Table("transactions AS t").
		Joins("LEFT JOIN customers AS c ON c.id = t.customer_id").
		Joins("LEFT JOIN banks AS b ON b.id = t.bank_id").
		Joins("LEFT JOIN games AS g ON g.id = t.game_id")
}

func (r *TransactionRepository) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	q.Normalize()

	var total int64
	if err := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var filtered int64
	countQ := transactionTable.ApplySearch(r.joined(ctx), q.Search)
	if err := countQ.Count(&filtered).Error; err != nil {
		return nil, err
	}

	var entities []*transactionRowEntity
	pageQ := transactionTable.ApplySearch(r.joined(ctx), q.Search).
		Select(transactionRowSelect).
		Order(transactionTable.OrderClause(q)).
		Offset(q.Start).
		Limit(q.Length)
	if err := pageQ.Scan(&entities).Error; err != nil {
		return nil, err
	}

	rows := make([]model.TransactionRow, len(entities))
	for i, e := range entities {
		rows[i] = e.toRow()
	}

	return &model.TableResult{
		Draw:            q.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Data:            rows,
	}, nil
}

// Summarize aggregates the filtered window into period buckets. The
// bucket keys are computed in Go so daily, ISO-week and month grouping
// behave identically on postgres and the sqlite test harness.
func (r *TransactionRepository) Summarize(ctx context.Context, f model.ReportFilter) (*model.Report, error) {
	start, end := reportWindow(f)
	upper := end.AddDate(0, 0, 1) // end date is inclusive

	filtered := func() *gorm.DB {
		q := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{}).
			Where("created_at >= ? AND created_at < ?", start, upper)
		if f.UserID != nil {
			q = q.Where("user_id = ?", *f.UserID)
		}
		if f.CustomerID != nil {
			q = q.Where("customer_id = ?", *f.CustomerID)
		}
		if f.BankID != nil {
			q = q.Where("bank_id = ?", *f.BankID)
		}
		if f.GameID != nil {
			q = q.Where("game_id = ?", *f.GameID)
		}
		if f.Type != nil {
			q = q.Where("type = ?", *f.Type)
		}
		return q
	}

	var totalCount int64
	if err := filtered().Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var totalAmount float64
	err := filtered().Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error
	if err != nil {
		return nil, err
	}

	type sample struct {
		CreatedAt time.Time `gorm:"column:created_at"`
		Amount    float64   `gorm:"column:amount"`
	}
	var samples []sample
	err = filtered().Select("created_at, amount").Order("created_at ASC, id ASC").Scan(&samples).Error
	if err != nil {
		return nil, err
	}

	period := f.Period
	if period == "" {
		period = model.ReportPeriodDaily
	}

	var rows []model.ReportRow
	index := map[string]int{}
	for _, s := range samples {
		key := bucketKey(period, s.CreatedAt)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, model.ReportRow{Bucket: key})
		}
		rows[i].Count++
		rows[i].Amount += s.Amount
	}
	if rows == nil {
		rows = []model.ReportRow{}
	}

	return &model.Report{
		Period:      period,
		Start:       start.Format("2006-01-02"),
		End:         end.Format("2006-01-02"),
		TotalCount:  totalCount,
		TotalAmount: totalAmount,
		Rows:        rows,
	}, nil
}

// reportWindow defaults to the trailing seven days, today included.
func reportWindow(f model.ReportFilter) (time.Time, time.Time) {
	start, end := f.Start, f.End
	if end.IsZero() {
		now := time.Now()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -6)
	}
	return start, end
}

func bucketKey(period model.ReportPeriod, t time.Time) string {
	switch period {
	case model.ReportPeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.ReportPeriodMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func (r *TransactionRepository) Latest(ctx context.Context, n int) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}

func (r *TransactionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{}).Count(&count).Error
	return count, err
}
