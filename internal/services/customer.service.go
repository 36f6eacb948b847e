package services

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	ListAll(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, id int64, p model.CustomerUpdateRequest, updatedBy string) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

type CustomerService struct {
	customers CustomerRepository
}

func NewCustomerService(customers CustomerRepository) *CustomerService {
	return &CustomerService{
		customers: customers,
	}
}

// Create stores a customer owned by userID; createdBy is the acting
// username kept on the audit columns.
func (s *CustomerService) Create(ctx context.Context, p model.CustomerCreateRequest, userID, createdBy string) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, validationErr(err)
	}

	return s.customers.Create(ctx, &model.Customer{
		Name:      p.Name,
		AccountID: p.AccountID,
		UserID:    userID,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	})
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return customer, nil
}

// ListAll backs the booking form dropdown, ordered by name.
func (s *CustomerService) ListAll(ctx context.Context) ([]*model.Customer, error) {
	return s.customers.ListAll(ctx)
}

func (s *CustomerService) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest, updatedBy string) (*model.Customer, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, validationErr(errors.New("name cannot be empty"))
	}
	if p.AccountID != nil && *p.AccountID == "" {
		return nil, validationErr(errors.New("acc_id cannot be empty"))
	}

	customer, err := s.customers.Update(ctx, id, p, updatedBy)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.customers.Delete(ctx, id))
}

func (s *CustomerService) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	return s.customers.Table(ctx, q)
}
