package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/storage"

	"gorm.io/gorm"
)

// Upload settings for post images. Keys are never overwritten.
const imageCacheControl = "3600"

type PostService struct {
	db       *gorm.DB
	store    storage.ObjectStore
	namer    *storage.Namer
	cache    cache.Cache
	cacheTTL time.Duration

	// writes counts Update/Delete invalidations. A read only fills the cache
	// if no write happened while it was loading the row.
	cacheMu sync.Mutex
	writes  uint64
}

func NewPostService(db *gorm.DB, store storage.ObjectStore, c cache.Cache, cacheTTL time.Duration) *PostService {
	if c == nil {
		c = cache.Nop()
	}
	return &PostService{
		db:       db,
		store:    store,
		namer:    storage.NewNamer(),
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// CreatePostInput carries the fields of a new post. Likes is accepted from
// clients for compatibility but never stored: new posts start at zero.
type CreatePostInput struct {
	Author   string
	Title    string
	UserID   string
	Excerpt  string
	Date     string
	Category string
	Likes    int
}

func (in *CreatePostInput) normalize() error {
	in.Author = strings.TrimSpace(in.Author)
	in.Title = strings.TrimSpace(in.Title)
	in.UserID = strings.TrimSpace(in.UserID)

	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Author == "" {
		missing = append(missing, "author")
	}
	if in.UserID == "" {
		missing = append(missing, "userId")
	}
	if len(missing) > 0 {
		return validationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ImageUpload is an image attached to a new post.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// PostUpdate is a partial update. Nil fields are left unchanged.
// Image is stored as given; callers are trusted to pass an existing key or "".
type PostUpdate struct {
	Author   *string `json:"author"`
	Title    *string `json:"title"`
	UserID   *string `json:"userId"`
	Excerpt  *string `json:"excerpt"`
	Date     *string `json:"date"`
	Likes    *int    `json:"likes"`
	Image    *string `json:"image"`
	Category *string `json:"category"`
}

func (u PostUpdate) changes() (map[string]interface{}, error) {
	changes := make(map[string]interface{})

	required := []struct {
		column string
		value  *string
	}{
		{"author", u.Author},
		{"title", u.Title},
		{"userId", u.UserID},
	}
	for _, f := range required {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return nil, validationError("%s cannot be empty", f.column)
		}
		changes[f.column] = v
	}

	if u.Likes != nil {
		if *u.Likes < 0 {
			return nil, validationError("likes cannot be negative")
		}
		changes["likes"] = *u.Likes
	}
	if u.Excerpt != nil {
		changes["excerpt"] = *u.Excerpt
	}
	if u.Date != nil {
		changes["date"] = *u.Date
	}
	if u.Image != nil {
		changes["image"] = *u.Image
	}
	if u.Category != nil {
		changes["category"] = *u.Category
	}

	if len(changes) == 0 {
		return nil, validationError("no fields to update")
	}
	return changes, nil
}

// Create uploads the optional image, then inserts the post. If the insert
// fails the uploaded object is removed again on a best-effort basis.
func (s *PostService) Create(ctx context.Context, in CreatePostInput, img *ImageUpload) (*models.Post, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if img != nil && len(img.Data) == 0 {
		return nil, validationError("image is empty")
	}
	if in.Likes != 0 {
		log.Printf("[posts] ignoring likes=%d on create, new posts start at 0", in.Likes)
	}

	var imageKey string
	if img != nil {
		key := s.namer.DeriveKey(img.Filename)
		stored, err := s.store.Upload(ctx, key, img.Data, storage.UploadOptions{
			Upsert:       false,
			CacheControl: imageCacheControl,
			ContentType:  storage.DetectContentType(img.Data),
		})
		if err != nil {
			log.Printf("[posts] image upload failed for %q: %v", img.Filename, err)
			return nil, storageError("upload image", err)
		}
		imageKey = stored
	}

	post := models.Post{
		Author:   in.Author,
		Title:    in.Title,
		UserID:   in.UserID,
		Excerpt:  in.Excerpt,
		Date:     in.Date,
		Category: in.Category,
		Likes:    0,
		Image:    imageKey,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		log.Printf("[posts] insert failed: %v", err)
		if imageKey != "" {
			s.removeImage(context.WithoutCancel(ctx), imageKey)
		}
		return nil, persistenceError("insert post", err)
	}

	log.Printf("[posts] created %s (image=%q)", post.ID, post.Image)
	return &post, nil
}

// GetByID returns a single post, reading through the detail cache.
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("id is required")
	}

	key := postCacheKey(id)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached models.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.cache.Delete(ctx, key)
	}

	s.cacheMu.Lock()
	seen := s.writes
	s.cacheMu.Unlock()

	post, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(post); err == nil {
		s.cacheMu.Lock()
		if s.writes == seen {
			s.cache.Set(ctx, key, data, s.cacheTTL)
		}
		s.cacheMu.Unlock()
	}
	return post, nil
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.newest(ctx).Find(&posts).Error; err != nil {
		return nil, persistenceError("list posts", err)
	}
	return posts, nil
}

// SearchByTitle matches query as a literal, case-insensitive substring of
// the title. Wildcard characters in query are escaped.
func (s *PostService) SearchByTitle(ctx context.Context, query string) ([]models.Post, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, validationError("search query is required")
	}

	cond := `LOWER(title) LIKE LOWER(?) ESCAPE '\'`
	if s.db.Dialector.Name() == "postgres" {
		cond = `title ILIKE ? ESCAPE '\'`
	}

	posts := []models.Post{}
	if err := s.newest(ctx).Where(cond, "%"+escapeLike(q)+"%").Find(&posts).Error; err != nil {
		return nil, persistenceError("search posts", err)
	}
	return posts, nil
}

// ListByUser returns the posts whose userId equals userID, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError("userId is required")
	}

	posts := []models.Post{}
	err := s.newest(ctx).
		Where(map[string]interface{}{"userId": userID}).
		Find(&posts).Error
	if err != nil {
		return nil, persistenceError("list user posts", err)
	}
	return posts, nil
}

// Update applies the non-nil fields of upd and returns the stored post.
func (s *PostService) Update(ctx context.Context, id string, upd PostUpdate) (*models.Post, error) {
	changes, err := upd.changes()
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, persistenceError("update post", res.Error)
	}
	s.invalidate(ctx, id)
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, id)
	}

	return s.find(ctx, id)
}

// Delete removes the post's image from the object store, then the row.
// A failed image removal is logged and does not stop the row delete.
func (s *PostService) Delete(ctx context.Context, id string) error {
	post, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if post.Image != "" {
		s.removeImage(ctx, post.Image)
	}

	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{}).Error; err != nil {
		return persistenceError("delete post", err)
	}
	s.invalidate(ctx, id)

	log.Printf("[posts] deleted %s", id)
	return nil
}

func (s *PostService) find(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %s", ErrNotFound, id)
		}
		return nil, persistenceError("get post", err)
	}
	return &post, nil
}

func (s *PostService) newest(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
}

func (s *PostService) removeImage(ctx context.Context, key string) {
	if err := s.store.Remove(ctx, []string{key}); err != nil {
		log.Printf("[posts] failed to remove image %s: %v", key, err)
	}
}

// invalidate drops the cached detail for id and stops in-flight reads from
// caching what they loaded before the write.
func (s *PostService) invalidate(ctx context.Context, id string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.writes++
	s.cache.Delete(ctx, postCacheKey(id))
}

func postCacheKey(id string) string {
	return "post:detail:" + id
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
