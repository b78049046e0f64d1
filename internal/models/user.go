// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role struct {
	BaseModel
	Authority string `json:"authority" gorm:"uniqueIndex;size:50;not null"`
}

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:80;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string     `json:"phone" gorm:"size:30"`
	BirthDate    *time.Time `json:"birthDate" gorm:"type:date"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`

	// Relationships
	Roles  []Role  `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	Orders []Order `json:"-" gorm:"foreignKey:ClientID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Principal folds the loaded role rows into the acting identity. Roles must be
// preloaded; unknown authorities are ignored.
func (u *User) Principal() *Principal {
	p := &Principal{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
	}
	for _, r := range u.Roles {
		p.Roles |= ParseAuthority(r.Authority)
	}
	return p
}
