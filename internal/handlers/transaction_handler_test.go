package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, p model.TransactionCreateRequest, userID, createdBy string) (*model.Transaction, error) {
	args := m.Called(ctx, p, userID, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, id int64, p *model.TransactionUpdateRequest, updatedBy string) (*model.Transaction, error) {
	args := m.Called(ctx, id, p, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type stubListers struct{}

func (stubListers) ListAll(ctx context.Context) ([]*model.Customer, error) {
	return []*model.Customer{{ID: 1, Name: "Alice"}}, nil
}

type stubBankListers struct{}

func (stubBankListers) ListAll(ctx context.Context) ([]*model.Bank, error) {
	return []*model.Bank{{ID: 2, Name: "ABA"}}, nil
}

type stubGameListers struct{}

func (stubGameListers) ListAll(ctx context.Context) ([]*model.Game, error) {
	return []*model.Game{{ID: 3, Name: "Poker"}}, nil
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

func newTransactionHandler(svc TransactionService) (*TransactionHandler, *countingInvalidator) {
	inv := &countingInvalidator{}
	return NewTransactionHandler(svc, stubListers{}, stubBankListers{}, stubGameListers{}, inv), inv
}

func TestTransactionHandler_Booking(t *testing.T) {
	h, _ := newTransactionHandler(new(MockTransactionService))

	ctx := setupTestContext("GET", "/manage/booking", nil)
	h.Booking(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp struct {
		Customers []*model.Customer `json:"customers"`
		Banks     []*model.Bank     `json:"banks"`
		Games     []*model.Game     `json:"games"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "Alice", resp.Customers[0].Name)
	require.Len(t, resp.Banks, 1)
	require.Len(t, resp.Games, 1)
}

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("booking drops the dashboard snapshot", func(t *testing.T) {
		svc := new(MockTransactionService)
		h, inv := newTransactionHandler(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.TransactionCreateRequest) bool {
			return p.Amount == 25.5 && p.CustomerID == 1 && p.BankID == 2 && p.GameID == 3
		}), "", "").Return(&model.Transaction{ID: 11, Amount: 25.5}, nil)

		ctx := setupFormContext("/manage/transactions/create",
			"amount=25.5&currency=USD&bank_stor=vault&type=1&customer_id=1&bank_id=2&game_id=3")
		ctx.Request.Header.Set("Accept", "application/json")
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
		assert.Equal(t, 1, inv.calls)
	})

	t.Run("owner id and username stamp separately", func(t *testing.T) {
		svc := new(MockTransactionService)
		h, _ := newTransactionHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything, "7", "clerk").
			Return(&model.Transaction{ID: 12, Amount: 25.5}, nil)

		ctx := setupFormContext("/manage/transactions/create",
			"amount=25.5&currency=USD&bank_stor=vault&type=1&customer_id=1&bank_id=2&game_id=3")
		ctx.Request.Header.Set("Accept", "application/json")
		ctx.SetUserValue(principalKey, &auth.Principal{UserID: "7", Username: "clerk"})
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("failed booking leaves the snapshot alone", func(t *testing.T) {
		svc := new(MockTransactionService)
		h, inv := newTransactionHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, services.ErrNotFound)

		ctx := setupFormContext("/manage/transactions/create",
			"amount=25.5&currency=USD&bank_stor=vault&type=1&customer_id=99&bank_id=2&game_id=3")
		ctx.Request.Header.Set("Accept", "application/json")
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
		assert.Equal(t, 0, inv.calls)
	})

	t.Run("malformed amount never reaches the service", func(t *testing.T) {
		svc := new(MockTransactionService)
		h, _ := newTransactionHandler(svc)

		ctx := setupFormContext("/manage/transactions/create", "amount=lots&currency=USD")
		ctx.Request.Header.Set("Accept", "application/json")
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTransactionHandler_Delete(t *testing.T) {
	svc := new(MockTransactionService)
	h, inv := newTransactionHandler(svc)

	svc.On("Delete", mock.Anything, int64(11)).Return(nil)

	ctx := setupFormContext("/manage/transactions/11/delete", "")
	ctx.SetUserValue("id", "11")
	h.Delete(ctx)

	assert.Equal(t, fasthttp.StatusSeeOther, ctx.Response.StatusCode())
	assert.Equal(t, transactionsPage, string(ctx.Response.Header.Peek("Location")))
	assert.Equal(t, 1, inv.calls)
}
