package repository

import (
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type BankEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	UserID    string    `db:"user_id"    gorm:"column:user_id;not null"`
	CreatedBy string    `db:"created_by" gorm:"column:created_by;not null"`
	UpdatedBy string    `db:"updated_by" gorm:"column:updated_by;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (BankEntity) TableName() string {
	return "banks"
}

func toBankEntity(m *model.Bank) *BankEntity {
	if m == nil {
		return nil
	}
	return &BankEntity{
		ID:        m.ID,
		Name:      m.Name,
		UserID:    m.UserID,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBankModel(e *BankEntity) *model.Bank {
	if e == nil {
		return nil
	}
	return &model.Bank{
		ID:        e.ID,
		Name:      e.Name,
		UserID:    e.UserID,
		CreatedBy: e.CreatedBy,
		UpdatedBy: e.UpdatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toBankModels(entities []*BankEntity) []*model.Bank {
	if entities == nil {
		return nil
	}
	models := make([]*model.Bank, len(entities))
	for i, e := range entities {
		models[i] = toBankModel(e)
	}
	return models
}

func (e *BankEntity) toRow() model.BankRow {
	return model.BankRow{
		ID:        e.ID,
		Name:      e.Name,
		UserID:    e.UserID,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
