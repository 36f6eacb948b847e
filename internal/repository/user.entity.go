package repository

import (
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type UserEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	FullName     string    `db:"fullname"      gorm:"column:fullname;not null"`
	Username     string    `db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	IsAdmin      bool      `db:"is_admin"      gorm:"column:is_admin;default:false"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		FullName:     m.FullName,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		FullName:     e.FullName,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		IsAdmin:      e.IsAdmin,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (e *UserEntity) toRow() model.UserRow {
	return model.UserRow{
		ID:        e.ID,
		FullName:  e.FullName,
		Username:  e.Username,
		IsAdmin:   e.IsAdmin,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
