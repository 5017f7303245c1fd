package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a citizen identity. Identities are issued anonymously (see the
// /anonid endpoint) and only linked to complaints the citizen chose to sign.
type User struct {
	ID                   string `gorm:"primaryKey" json:"id"` // anonymous UUID
	AccountabilityPoints int    `json:"accountability_points"`
}

// BeforeCreate generates a new UUID when the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
