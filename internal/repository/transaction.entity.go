package repository

import (
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type TransactionEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Amount      float64   `db:"amount"      gorm:"column:amount;not null"`
	Currency    string    `db:"currency"    gorm:"column:currency;not null"`
	BankStorage string    `db:"bank_stor"   gorm:"column:bank_stor;not null"`
	Type        int       `db:"type"        gorm:"column:type;not null"`
	UserID      string    `db:"user_id"     gorm:"column:user_id;not null"`
	CustomerID  int64     `db:"customer_id" gorm:"column:customer_id;not null;index"`
	BankID      int64     `db:"bank_id"     gorm:"column:bank_id;not null;index"`
	GameID      int64     `db:"game_id"     gorm:"column:game_id;not null;index"`
	CreatedBy   string    `db:"created_by"  gorm:"column:created_by;not null"`
	UpdatedBy   string    `db:"updated_by"  gorm:"column:updated_by;not null"`
	CreatedAt   time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		Amount:      m.Amount,
		Currency:    m.Currency,
		BankStorage: m.BankStorage,
		Type:        m.Type,
		UserID:      m.UserID,
		CustomerID:  m.CustomerID,
		BankID:      m.BankID,
		GameID:      m.GameID,
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		BankStorage: e.BankStorage,
		Type:        e.Type,
		UserID:      e.UserID,
		CustomerID:  e.CustomerID,
		BankID:      e.BankID,
		GameID:      e.GameID,
		CreatedBy:   e.CreatedBy,
		UpdatedBy:   e.UpdatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}

// transactionRowEntity is the joined projection used by the table
// endpoint, the related display names come from a single query.
type transactionRowEntity struct {
	ID           int64     `gorm:"column:id"`
	Amount       float64   `gorm:"column:amount"`
	Currency     string    `gorm:"column:currency"`
	BankStorage  string    `gorm:"column:bank_stor"`
	Type         int       `gorm:"column:type"`
	CustomerName string    `gorm:"column:customer_name"`
	BankName     string    `gorm:"column:bank_name"`
	GameName     string    `gorm:"column:game_name"`
	CreatedBy    string    `gorm:"column:created_by"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (e *transactionRowEntity) toRow() model.TransactionRow {
	return model.TransactionRow{
		ID:           e.ID,
		Amount:       e.Amount,
		Currency:     e.Currency,
		BankStorage:  e.BankStorage,
		Type:         e.Type,
		CustomerName: e.CustomerName,
		BankName:     e.BankName,
		GameName:     e.GameName,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
