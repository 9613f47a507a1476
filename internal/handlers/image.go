package handlers

import (
	"errors"
	"log"
	"net/http"

	"inkwell/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// ImageHandler serves post images straight from the object store. Deployments
// using Supabase usually link the bucket's public URL instead.
type ImageHandler struct {
	store storage.ObjectStore
}

func NewImageHandler(store storage.ObjectStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// Serve GET /images/:key
func (h *ImageHandler) Serve(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		badRequest(c, "missing image key")
		return
	}

	data, err := h.store.Download(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		log.Printf("[images] download %s failed: %v", key, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load image"})
		return
	}

	// Keys are never overwritten, so responses can be cached for a long time.
	c.Header("Cache-Control", "public, max-age=604800, immutable")
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
