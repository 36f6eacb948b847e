package model

import (
	"errors"
	"time"
)

type User struct {
	ID           int64     `json:"id"        db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	FullName     string    `json:"fullname"  db:"fullname"      gorm:"column:fullname;not null"`
	Username     string    `json:"username"  db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `json:"-"         db:"password_hash" gorm:"column:password_hash;not null"`
	IsAdmin      bool      `json:"is_admin"  db:"is_admin"      gorm:"column:is_admin;default:false"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// UserCreateRequest is the input for creating a user. Password is the
// plain text credential, hashing happens in the service layer.
type UserCreateRequest struct {
	FullName string
	Username string
	Password string
	IsAdmin  bool
}

func (p UserCreateRequest) Validate() error {
	if p.Username == "" {
		return errors.New("username is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
