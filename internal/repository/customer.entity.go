package repository

import (
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type CustomerEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	AccountID string    `db:"acc_id"     gorm:"column:acc_id;not null"`
	UserID    string    `db:"user_id"    gorm:"column:user_id;not null"`
	CreatedBy string    `db:"created_by" gorm:"column:created_by;not null"`
	UpdatedBy string    `db:"updated_by" gorm:"column:updated_by;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:        m.ID,
		Name:      m.Name,
		AccountID: m.AccountID,
		UserID:    m.UserID,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		Name:      e.Name,
		AccountID: e.AccountID,
		UserID:    e.UserID,
		CreatedBy: e.CreatedBy,
		UpdatedBy: e.UpdatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}

func (e *CustomerEntity) toRow() model.CustomerRow {
	return model.CustomerRow{
		ID:        e.ID,
		Name:      e.Name,
		AccountID: e.AccountID,
		UserID:    e.UserID,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
