package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog entry. Image is empty or the object store key of its attachment.
type Post struct {
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	Author    string    `gorm:"not null" json:"author"`
	Title     string    `gorm:"not null" json:"title"`
	UserID    string    `gorm:"column:userId;not null;index" json:"userId"`
	Excerpt   string    `gorm:"type:text" json:"excerpt"`
	Date      string    `json:"date"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Category  string    `json:"category"`
	Image     string    `gorm:"not null;default:''" json:"image"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
