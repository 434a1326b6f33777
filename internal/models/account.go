package models

import (
	"time"
)

// Account is a registered LifeChip user. The password hash never appears in
// API responses.
type Account struct {
	ID           int       `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     *string   `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
}
