package models

import (
	"time"

	"gorm.io/gorm"
)

// Favorite marks a post as favorited by a user. (userId, postId) is unique.
type Favorite struct {
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	UserID    string    `gorm:"column:userId;not null;index;uniqueIndex:idx_favorites_user_post" json:"userId"`
	PostID    string    `gorm:"column:postId;not null;uniqueIndex:idx_favorites_user_post" json:"postId"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}
