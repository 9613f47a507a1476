package services

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CreateCommentInput struct {
	PostID  string `json:"postid" form:"postid"`
	UserID  string `json:"userid" form:"userid"`
	Content string `json:"content" form:"content"`
	Author  string `json:"author" form:"author"`
	Date    string `json:"date" form:"date"`
}

// CommentUpdate is a partial update; nil fields are left unchanged.
type CommentUpdate struct {
	Content *string `json:"content"`
	Author  *string `json:"author"`
	Date    *string `json:"date"`
}

// ListForPost returns a post's comments, oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, validationError("postid is required")
	}

	comments := []models.Comment{}
	err := s.db.WithContext(ctx).
		Where(map[string]interface{}{"postid": postID}).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, persistenceError("list comments", err)
	}
	for i := range comments {
		render(&comments[i])
	}
	return comments, nil
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	fields := []struct{ name, value string }{
		{"postid", in.PostID},
		{"userid", in.UserID},
		{"content", in.Content},
		{"author", in.Author},
		{"date", in.Date},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, validationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	comment := models.Comment{
		PostID:  strings.TrimSpace(in.PostID),
		UserID:  strings.TrimSpace(in.UserID),
		Content: in.Content,
		Author:  strings.TrimSpace(in.Author),
		Date:    in.Date,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, persistenceError("insert comment", err)
	}
	render(&comment)
	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, id string, upd CommentUpdate) (*models.Comment, error) {
	changes := make(map[string]interface{})
	if upd.Content != nil {
		if strings.TrimSpace(*upd.Content) == "" {
			return nil, validationError("content cannot be empty")
		}
		changes["content"] = *upd.Content
	}
	if upd.Author != nil {
		if strings.TrimSpace(*upd.Author) == "" {
			return nil, validationError("author cannot be empty")
		}
		changes["author"] = strings.TrimSpace(*upd.Author)
	}
	if upd.Date != nil {
		changes["date"] = *upd.Date
	}
	if len(changes) == 0 {
		return nil, validationError("no fields to update")
	}

	db := s.db.WithContext(ctx)
	res := db.Model(&models.Comment{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, persistenceError("update comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, id)
	}

	var comment models.Comment
	if err := db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, persistenceError("get comment", err)
	}
	render(&comment)
	return &comment, nil
}

// Delete removes the comment. Deleting an unknown id succeeds.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return validationError("id is required")
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return persistenceError("delete comment", err)
	}
	return nil
}

func render(c *models.Comment) {
	c.ContentHTML = utils.RenderMarkdown(c.Content)
}
