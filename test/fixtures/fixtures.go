package fixtures

import (
	"github.com/sambathreasmey/library-management-system/internal/model"
)

var (
	TestAdmin = model.User{
		ID:       1,
		FullName: "Administrator",
		Username: "admin",
		IsAdmin:  true,
	}

	TestClerk = model.User{
		ID:       2,
		FullName: "Front Desk",
		Username: "clerk",
		IsAdmin:  false,
	}
)

func NewBookCreateRequest(title, author string) model.BookCreateRequest {
	return model.BookCreateRequest{
		Title:  title,
		Author: author,
	}
}

func NewCustomerCreateRequest(name, accID string) model.CustomerCreateRequest {
	return model.CustomerCreateRequest{
		Name:      name,
		AccountID: accID,
	}
}

func NewBookingRequest(customerID, bankID, gameID int64, amount float64) model.TransactionCreateRequest {
	return model.TransactionCreateRequest{
		Amount:      amount,
		Currency:    "USD",
		BankStorage: "main",
		Type:        1,
		CustomerID:  customerID,
		BankID:      bankID,
		GameID:      gameID,
	}
}

func BookWithID(id int64) *model.Book {
	return &model.Book{
		ID:     id,
		Title:  "The Go Programming Language",
		Author: "Donovan & Kernighan",
		Copies: 1,
	}
}

func TransactionWithID(id int64) *model.Transaction {
	return &model.Transaction{
		ID:          id,
		Amount:      25.50,
		Currency:    "USD",
		BankStorage: "main",
		Type:        1,
		UserID:      "admin",
		CustomerID:  1,
		BankID:      1,
		GameID:      1,
		CreatedBy:   "admin",
		UpdatedBy:   "admin",
	}
}

var ValidPeriods = []string{"daily", "weekly", "monthly"}

func Ptr[T any](v T) *T {
	return &v
}
