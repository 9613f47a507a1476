package services

import (
	"context"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

func favoriteKeys(userID, postID string) (string, string, error) {
	userID, postID = strings.TrimSpace(userID), strings.TrimSpace(postID)
	if userID == "" || postID == "" {
		return "", "", validationError("userId and postId are required")
	}
	return userID, postID, nil
}

// Add favorites postID for userID. Adding an existing pair is not an error:
// the stored row is returned with existed set to true.
func (s *FavoriteService) Add(ctx context.Context, userID, postID string) (fav *models.Favorite, existed bool, err error) {
	userID, postID, err = favoriteKeys(userID, postID)
	if err != nil {
		return nil, false, err
	}

	// Concurrent adds of the same pair collapse onto the unique index.
	fav = &models.Favorite{UserID: userID, PostID: postID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fav)
	if res.Error != nil {
		return nil, false, persistenceError("add favorite", res.Error)
	}
	if res.RowsAffected > 0 {
		return fav, false, nil
	}

	var stored models.Favorite
	err = s.db.WithContext(ctx).
		Where(&models.Favorite{UserID: userID, PostID: postID}).
		First(&stored).Error
	if err != nil {
		return nil, false, persistenceError("load favorite", err)
	}
	return &stored, true, nil
}

// Remove deletes the pair if present. Removing an absent pair succeeds.
func (s *FavoriteService) Remove(ctx context.Context, userID, postID string) error {
	userID, postID, err := favoriteKeys(userID, postID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Where(&models.Favorite{UserID: userID, PostID: postID}).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return persistenceError("remove favorite", err)
	}
	return nil
}

// ListForUser returns the user's favorites in the order they were added,
// each with its post attached.
func (s *FavoriteService) ListForUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError("userId is required")
	}

	favs := []models.Favorite{}
	err := s.db.WithContext(ctx).
		Preload("Post").
		Where(map[string]interface{}{"userId": userID}).
		Order("created_at ASC").Order("id ASC").
		Find(&favs).Error
	if err != nil {
		return nil, persistenceError("list favorites", err)
	}
	return favs, nil
}
