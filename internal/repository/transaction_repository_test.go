package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingWorld struct {
	db           *testDB
	transactions *TransactionRepository
	customers    *CustomerRepository
	banks        *BankRepository
	games        *GameRepository

	alice *model.Customer
	bob   *model.Customer
	aba   *model.Bank
	poker *model.Game
}

func setupBookingWorld(t *testing.T) *bookingWorld {
	db := setupTestDB(t)
	ctx := context.Background()

	w := &bookingWorld{
		db:           db,
		transactions: NewTransactionRepository(db.DB),
		customers:    NewCustomerRepository(db.DB),
		banks:        NewBankRepository(db.DB),
		games:        NewGameRepository(db.DB),
	}

	var err error
	w.alice, err = w.customers.Create(ctx, &model.Customer{Name: "Alice", AccountID: "acc-1", UserID: "admin", CreatedBy: "admin", UpdatedBy: "admin"})
	require.NoError(t, err)
	w.bob, err = w.customers.Create(ctx, &model.Customer{Name: "Bob", AccountID: "acc-2", UserID: "admin", CreatedBy: "admin", UpdatedBy: "admin"})
	require.NoError(t, err)
	w.aba, err = w.banks.Create(ctx, &model.Bank{Name: "ABA", UserID: "admin", CreatedBy: "admin", UpdatedBy: "admin"})
	require.NoError(t, err)
	w.poker, err = w.games.Create(ctx, &model.Game{Name: "Poker", UserID: "admin", CreatedBy: "admin", UpdatedBy: "admin"})
	require.NoError(t, err)

	return w
}

func (w *bookingWorld) book(t *testing.T, customerID int64, amount float64, createdAt time.Time) *model.Transaction {
	tx := &model.Transaction{
		Amount:      amount,
		Currency:    "USD",
		BankStorage: "main",
		Type:        1,
		UserID:      "admin",
		CustomerID:  customerID,
		BankID:      w.aba.ID,
		GameID:      w.poker.ID,
		CreatedBy:   "admin",
		UpdatedBy:   "admin",
	}
	created, err := w.transactions.Create(context.Background(), tx)
	require.NoError(t, err)

	if !createdAt.IsZero() {
		err = w.db.rawDB.Model(&TransactionEntity{}).
			Where("id = ?", created.ID).
			UpdateColumn("created_at", createdAt).Error
		require.NoError(t, err)
		created.CreatedAt = createdAt
	}
	return created
}

func TestTransactionRepository_TableJoinsDisplayNames(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	w.book(t, w.alice.ID, 10, time.Time{})
	w.book(t, w.bob.ID, 20, time.Time{})

	res, err := w.transactions.Table(ctx, model.TableQuery{Length: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.RecordsTotal)

	rows := res.Data.([]model.TransactionRow)
	require.Len(t, rows, 2)
	names := []string{rows[0].CustomerName, rows[1].CustomerName}
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
	assert.Equal(t, "ABA", rows[0].BankName)
	assert.Equal(t, "Poker", rows[0].GameName)
}

func TestTransactionRepository_TableSearchesJoinedNames(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	w.book(t, w.alice.ID, 10, time.Time{})
	w.book(t, w.bob.ID, 20, time.Time{})

	res, err := w.transactions.Table(ctx, model.TableQuery{Length: 10, Search: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.RecordsTotal)
	assert.Equal(t, int64(1), res.RecordsFiltered)

	rows := res.Data.([]model.TransactionRow)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].CustomerName)
	assert.Equal(t, float64(10), rows[0].Amount)
}

func TestTransactionRepository_Update(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	created := w.book(t, w.alice.ID, 10, time.Time{})

	amount := 42.5
	updated, err := w.transactions.Update(ctx, created.ID, &model.TransactionUpdateRequest{Amount: &amount}, "editor")
	require.NoError(t, err)
	assert.Equal(t, 42.5, updated.Amount)
	assert.Equal(t, "USD", updated.Currency)
	assert.Equal(t, "editor", updated.UpdatedBy)

	_, err = w.transactions.Update(ctx, 9999, &model.TransactionUpdateRequest{}, "editor")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepository_DeleteRestrictedWhenReferenced(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	w.book(t, w.alice.ID, 10, time.Time{})

	assert.ErrorIs(t, w.customers.Delete(ctx, w.alice.ID), ErrInUse)
	assert.NoError(t, w.customers.Delete(ctx, w.bob.ID))

	assert.ErrorIs(t, w.banks.Delete(ctx, w.aba.ID), ErrInUse)
	assert.ErrorIs(t, w.games.Delete(ctx, w.poker.ID), ErrInUse)
}

func TestTransactionRepository_SummarizeDaily(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
	}

	w.book(t, w.alice.ID, 10, day(2025, time.March, 3))
	w.book(t, w.alice.ID, 15, day(2025, time.March, 3))
	w.book(t, w.bob.ID, 20, day(2025, time.March, 5))
	// outside the window, the end date itself is still included
	w.book(t, w.bob.ID, 99, day(2025, time.March, 11))

	report, err := w.transactions.Summarize(ctx, model.ReportFilter{
		Start:  day(2025, time.March, 1),
		End:    day(2025, time.March, 10),
		Period: model.ReportPeriodDaily,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReportPeriodDaily, report.Period)
	assert.Equal(t, int64(3), report.TotalCount)
	assert.InDelta(t, 45.0, report.TotalAmount, 0.001)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "2025-03-03", report.Rows[0].Bucket)
	assert.Equal(t, int64(2), report.Rows[0].Count)
	assert.InDelta(t, 25.0, report.Rows[0].Amount, 0.001)
	assert.Equal(t, "2025-03-05", report.Rows[1].Bucket)

	// bucket totals agree with the ungrouped totals
	var sumCount int64
	var sumAmount float64
	for _, row := range report.Rows {
		sumCount += row.Count
		sumAmount += row.Amount
	}
	assert.Equal(t, report.TotalCount, sumCount)
	assert.InDelta(t, report.TotalAmount, sumAmount, 0.001)
}

func TestTransactionRepository_SummarizeWeekly(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	// 2025-03-03 is Monday of ISO week 10, 2025-03-10 is week 11
	w.book(t, w.alice.ID, 10, time.Date(2025, time.March, 3, 8, 0, 0, 0, time.Local))
	w.book(t, w.alice.ID, 20, time.Date(2025, time.March, 9, 8, 0, 0, 0, time.Local))
	w.book(t, w.bob.ID, 30, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local))

	report, err := w.transactions.Summarize(ctx, model.ReportFilter{
		Start:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
		End:    time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local),
		Period: model.ReportPeriodWeekly,
	})
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "2025-W10", report.Rows[0].Bucket)
	assert.Equal(t, int64(2), report.Rows[0].Count)
	assert.Equal(t, "2025-W11", report.Rows[1].Bucket)
	assert.Equal(t, int64(1), report.Rows[1].Count)
}

func TestTransactionRepository_SummarizeMonthlyWithFilters(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	w.book(t, w.alice.ID, 10, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local))
	w.book(t, w.bob.ID, 20, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.Local))
	w.book(t, w.alice.ID, 30, time.Date(2025, time.February, 2, 0, 0, 0, 0, time.Local))

	report, err := w.transactions.Summarize(ctx, model.ReportFilter{
		Start:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		End:        time.Date(2025, time.February, 28, 0, 0, 0, 0, time.Local),
		Period:     model.ReportPeriodMonthly,
		CustomerID: &w.alice.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.TotalCount)
	assert.InDelta(t, 40.0, report.TotalAmount, 0.001)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "2025-01", report.Rows[0].Bucket)
	assert.Equal(t, "2025-02", report.Rows[1].Bucket)
}

func TestTransactionRepository_SummarizeEmptyWindow(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	report, err := w.transactions.Summarize(ctx, model.ReportFilter{
		Start:  time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local),
		End:    time.Date(2020, time.January, 7, 0, 0, 0, 0, time.Local),
		Period: model.ReportPeriodDaily,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalCount)
	assert.Zero(t, report.TotalAmount)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
}

func TestTransactionRepository_LatestAndCount(t *testing.T) {
	w := setupBookingWorld(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		w.book(t, w.alice.ID, float64(i), time.Date(2025, time.April, 1+i, 0, 0, 0, 0, time.Local))
	}

	count, err := w.transactions.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	latest, err := w.transactions.Latest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, latest, 5)
	assert.Equal(t, float64(6), latest[0].Amount)
}
