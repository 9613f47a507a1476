package models

import (
	"time"
)

// Profile is a user's public profile. The service never writes it.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"index" json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Website   string    `json:"website"`
	Bio       string    `gorm:"size:200" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
