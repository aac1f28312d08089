package db_models

import "time"

type Account struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`

	// ResetToken and ResetTokenExpiry are set together on a forgot-password
	// request and cleared together on a successful reset.
	ResetToken       *string    `gorm:"index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}
