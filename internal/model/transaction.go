package model

import (
	"errors"
	"time"
)

type Transaction struct {
	ID          int64     `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Amount      float64   `json:"amount"      db:"amount"      gorm:"column:amount;not null"`
	Currency    string    `json:"currency"    db:"currency"    gorm:"column:currency;not null"`
	BankStorage string    `json:"bank_stor"   db:"bank_stor"   gorm:"column:bank_stor;not null"`
	Type        int       `json:"type"        db:"type"        gorm:"column:type;not null"`
	UserID      string    `json:"user_id"     db:"user_id"     gorm:"column:user_id;not null"`
	CustomerID  int64     `json:"customer_id" db:"customer_id" gorm:"column:customer_id;not null;index"`
	Customer    *Customer `json:"-"                            gorm:"foreignKey:CustomerID;references:ID"`
	BankID      int64     `json:"bank_id"     db:"bank_id"     gorm:"column:bank_id;not null;index"`
	Bank        *Bank     `json:"-"                            gorm:"foreignKey:BankID;references:ID"`
	GameID      int64     `json:"game_id"     db:"game_id"     gorm:"column:game_id;not null;index"`
	Game        *Game     `json:"-"                            gorm:"foreignKey:GameID;references:ID"`
	CreatedBy   string    `json:"created_by"  db:"created_by"  gorm:"column:created_by;not null"`
	UpdatedBy   string    `json:"updated_by"  db:"updated_by"  gorm:"column:updated_by;not null"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionCreateRequest is the input for booking a transaction.
// Every field is required.
type TransactionCreateRequest struct {
	Amount      float64
	Currency    string
	BankStorage string
	Type        int
	CustomerID  int64
	BankID      int64
	GameID      int64
}

func (p TransactionCreateRequest) Validate() error {
	if p.Amount == 0 {
		return errors.New("amount is required")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	if p.BankStorage == "" {
		return errors.New("bank_stor is required")
	}
	if p.Type == 0 {
		return errors.New("type is required")
	}
	if p.CustomerID == 0 || p.BankID == 0 || p.GameID == 0 {
		return errors.New("customer_id, bank_id and game_id are required")
	}
	return nil
}

type TransactionUpdateRequest struct {
	Amount      *float64
	Currency    *string
	BankStorage *string
	Type        *int
}
