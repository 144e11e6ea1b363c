package models

import "time"

// Identity represents a registered account.
type Identity struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Email      string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	SecretHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
