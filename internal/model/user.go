package model

import (
	"strings"
	"time"
)

type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          *string `gorm:"type:varchar(255);uniqueIndex"`
	EmailVerified  bool    `gorm:"not null;default:false"`
	HashedPassword []byte
	Name           string          `gorm:"type:varchar(255)"`
	UserProviders  []*UserProvider `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// HasPassword reports whether the user can sign in with a local password.
// Users created through an OAuth2 provider have none.
func (u *User) HasPassword() bool {
	return len(u.HashedPassword) != 0
}

func (u *User) EmailString() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmptyNullEmail maps an empty email to NULL so that the unique index
// only applies to users that actually have one.
func EmptyNullEmail(email string) *string {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}
	return &email
}
