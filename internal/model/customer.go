package model

import (
	"errors"
	"time"
)

type Customer struct {
	ID        int64     `json:"id"         db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `json:"name"       db:"name"       gorm:"column:name;not null"`
	AccountID string    `json:"acc_id"     db:"acc_id"     gorm:"column:acc_id;not null"`
	UserID    string    `json:"user_id"    db:"user_id"    gorm:"column:user_id;not null"`
	CreatedBy string    `json:"created_by" db:"created_by" gorm:"column:created_by;not null"`
	UpdatedBy string    `json:"updated_by" db:"updated_by" gorm:"column:updated_by;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

type CustomerCreateRequest struct {
	Name      string
	AccountID string
}

func (p CustomerCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.AccountID == "" {
		return errors.New("acc_id is required")
	}
	return nil
}

type CustomerUpdateRequest struct {
	Name      *string
	AccountID *string
}
