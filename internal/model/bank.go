package model

import (
	"errors"
	"time"
)

type Bank struct {
	ID        int64     `json:"id"         db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `json:"name"       db:"name"       gorm:"column:name;not null"`
	UserID    string    `json:"user_id"    db:"user_id"    gorm:"column:user_id;not null"`
	CreatedBy string    `json:"created_by" db:"created_by" gorm:"column:created_by;not null"`
	UpdatedBy string    `json:"updated_by" db:"updated_by" gorm:"column:updated_by;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Bank) TableName() string { return "banks" }

type BankCreateRequest struct {
	Name string
}

func (p BankCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
