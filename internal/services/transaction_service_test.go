package services

import (
	"context"
	"testing"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"github.com/sambathreasmey/library-management-system/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) Update(ctx context.Context, id int64, p *model.TransactionUpdateRequest, updatedBy string) (*model.Transaction, error) {
	args := m.Called(ctx, id, p, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepo) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TableResult), args.Error(1)
}

type stubCustomerLookup struct{ err error }

func (s stubCustomerLookup) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Customer{ID: id, Name: "Alice"}, nil
}

type stubBankLookup struct{ err error }

func (s stubBankLookup) GetByID(ctx context.Context, id int64) (*model.Bank, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Bank{ID: id, Name: "ABA"}, nil
}

type stubGameLookup struct{ err error }

func (s stubGameLookup) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Game{ID: id, Name: "Poker"}, nil
}

func validBooking() model.TransactionCreateRequest {
	return fixtures.NewBookingRequest(1, 2, 3, 25.50)
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps ownership and audit fields", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewTransactionService(repo, stubCustomerLookup{}, stubBankLookup{}, stubGameLookup{})

		// ownership is the account id, the audit columns carry the
		// username
		repo.On("Create", mock.Anything, mock.MatchedBy(func(tx *model.Transaction) bool {
			return tx.UserID == "1" && tx.CreatedBy == "admin" && tx.UpdatedBy == "admin"
		})).Return(fixtures.TransactionWithID(1), nil)

		_, err := svc.Create(ctx, validBooking(), "1", "admin")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewTransactionService(repo, stubCustomerLookup{err: repository.ErrNotFound}, stubBankLookup{}, stubGameLookup{})

		_, err := svc.Create(ctx, validBooking(), "1", "admin")
		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown bank", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewTransactionService(repo, stubCustomerLookup{}, stubBankLookup{err: repository.ErrNotFound}, stubGameLookup{})

		_, err := svc.Create(ctx, validBooking(), "1", "admin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown game", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewTransactionService(repo, stubCustomerLookup{}, stubBankLookup{}, stubGameLookup{err: repository.ErrNotFound})

		_, err := svc.Create(ctx, validBooking(), "1", "admin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("zero amount fails validation", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewTransactionService(repo, stubCustomerLookup{}, stubBankLookup{}, stubGameLookup{})

		p := validBooking()
		p.Amount = 0
		_, err := svc.Create(ctx, p, "1", "admin")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTransactionService_Update(t *testing.T) {
	repo := new(MockTransactionRepo)
	svc := NewTransactionService(repo, stubCustomerLookup{}, stubBankLookup{}, stubGameLookup{})

	amount := 99.0
	repo.On("Update", mock.Anything, int64(5), mock.Anything, "clerk").
		Return(&model.Transaction{ID: 5, Amount: amount, UpdatedBy: "clerk"}, nil)

	tx, err := svc.Update(context.Background(), 5, &model.TransactionUpdateRequest{Amount: &amount}, "clerk")
	require.NoError(t, err)
	assert.Equal(t, "clerk", tx.UpdatedBy)
}
