package models

import (
	"html/template"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	PostID    string    `gorm:"column:postid;not null;index" json:"postid"`
	UserID    string    `gorm:"column:userid;not null;index" json:"userid"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"not null" json:"author"`
	Date      string    `gorm:"not null" json:"date"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Not a column; filled from Content when the comment is returned.
	ContentHTML template.HTML `gorm:"-" json:"content_html"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
