package services

import (
	"context"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	Update(ctx context.Context, id int64, p *model.TransactionUpdateRequest, updatedBy string) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

type referenceLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
}

type bankLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Bank, error)
}

type gameLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Game, error)
}

type TransactionService struct {
	transactions TransactionRepository
	customers    referenceLookup
	banks        bankLookup
	games        gameLookup
}

func NewTransactionService(transactions TransactionRepository, customers referenceLookup, banks bankLookup, games gameLookup) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		customers:    customers,
		banks:        banks,
		games:        games,
	}
}

// Create books a transaction owned by userID; createdBy is the acting
// username kept on the audit columns. The referenced customer, bank
// and game must all exist, there are no dangling bookings.
func (s *TransactionService) Create(ctx context.Context, p model.TransactionCreateRequest, userID, createdBy string) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, validationErr(err)
	}

	if _, err := s.customers.GetByID(ctx, p.CustomerID); err != nil {
		return nil, mapRepoErr(err)
	}
	if _, err := s.banks.GetByID(ctx, p.BankID); err != nil {
		return nil, mapRepoErr(err)
	}
	if _, err := s.games.GetByID(ctx, p.GameID); err != nil {
		return nil, mapRepoErr(err)
	}

	return s.transactions.Create(ctx, &model.Transaction{
		Amount:      p.Amount,
		Currency:    p.Currency,
		BankStorage: p.BankStorage,
		Type:        p.Type,
		UserID:      userID,
		CustomerID:  p.CustomerID,
		BankID:      p.BankID,
		GameID:      p.GameID,
		CreatedBy:   createdBy,
		UpdatedBy:   createdBy,
	})
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, id int64, p *model.TransactionUpdateRequest, updatedBy string) (*model.Transaction, error) {
	tx, err := s.transactions.Update(ctx, id, p, updatedBy)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.transactions.Delete(ctx, id))
}

func (s *TransactionService) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	return s.transactions.Table(ctx, q)
}
