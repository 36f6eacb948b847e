package services

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type BankRepository interface {
	Create(ctx context.Context, bank *model.Bank) (*model.Bank, error)
	GetByID(ctx context.Context, id int64) (*model.Bank, error)
	ListAll(ctx context.Context) ([]*model.Bank, error)
	UpdateName(ctx context.Context, id int64, name *string, updatedBy string) (*model.Bank, error)
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

type BankService struct {
	banks BankRepository
}

func NewBankService(banks BankRepository) *BankService {
	return &BankService{
		banks: banks,
	}
}

func (s *BankService) Create(ctx context.Context, p model.BankCreateRequest, userID, createdBy string) (*model.Bank, error) {
	if err := p.Validate(); err != nil {
		return nil, validationErr(err)
	}

	return s.banks.Create(ctx, &model.Bank{
		Name:      p.Name,
		UserID:    userID,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	})
}

func (s *BankService) ListAll(ctx context.Context) ([]*model.Bank, error) {
	return s.banks.ListAll(ctx)
}

func (s *BankService) Update(ctx context.Context, id int64, name *string, updatedBy string) (*model.Bank, error) {
	if name != nil && *name == "" {
		return nil, validationErr(errors.New("name cannot be empty"))
	}

	bank, err := s.banks.UpdateName(ctx, id, name, updatedBy)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return bank, nil
}

func (s *BankService) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.banks.Delete(ctx, id))
}

func (s *BankService) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	return s.banks.Table(ctx, q)
}
