package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	BaseUUIDModel
	FirstName string `gorm:"type:varchar(100);not null"          json:"firstName"`
	LastName  string `gorm:"type:varchar(100);not null"          json:"lastName"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`

	// Password is the transient plaintext carried into BeforeSave.
	// Neither field ever serializes to JSON.
	Password     string `gorm:"-"                          json:"-"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if err := u.BaseUUIDModel.BeforeSave(tx); err != nil {
		return err
	}

	if u.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
		u.Password = ""
	}

	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

type SignupRequest struct {
	Email     string `json:"email"     form:"email"`
	Password  string `json:"password"  form:"password"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName"  form:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}
