package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

// Extra room on top of the image limit for the other multipart fields.
const formOverhead = 1 << 20

var errImageTooLarge = errors.New("image too large")

type PostHandler struct {
	posts          *services.PostService
	maxUploadBytes int64
}

func NewPostHandler(posts *services.PostService, maxUploadBytes int64) *PostHandler {
	return &PostHandler{posts: posts, maxUploadBytes: maxUploadBytes}
}

type createPostRequest struct {
	Author   string `json:"author"`
	Title    string `json:"title"`
	UserID   string `json:"userId"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// List GET /posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Search GET /posts/search?query=
func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.posts.SearchByTitle(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListByUser GET /posts/user/:userId
func (h *PostHandler) ListByUser(c *gin.Context) {
	posts, err := h.posts.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Detail GET /posts/:id
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create POST /posts
// Accepts multipart/form-data with an optional "image" file, or a JSON body.
func (h *PostHandler) Create(c *gin.Context) {
	var (
		in  services.CreatePostInput
		img *services.ImageUpload
	)

	if c.ContentType() == gin.MIMEJSON {
		var req createPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		in = services.CreatePostInput{
			Author:   req.Author,
			Title:    req.Title,
			UserID:   req.UserID,
			Excerpt:  req.Excerpt,
			Date:     req.Date,
			Category: req.Category,
		}
	} else {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+formOverhead)

		var err error
		img, err = h.readImage(c)
		if err != nil {
			if errors.Is(err, errImageTooLarge) {
				badRequest(c, fmt.Sprintf("image exceeds %d MB", h.maxUploadBytes>>20))
				return
			}
			badRequest(c, "invalid form data")
			return
		}
		in = services.CreatePostInput{
			Author:   c.PostForm("author"),
			Title:    c.PostForm("title"),
			UserID:   c.PostForm("userId"),
			Excerpt:  c.PostForm("excerpt"),
			Date:     c.PostForm("date"),
			Category: c.PostForm("category"),
			Likes:    utils.StringToInt(c.PostForm("likes")),
		}
	}

	post, err := h.posts.Create(c.Request.Context(), in, img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// readImage returns the uploaded "image" file, or nil when the request has none.
func (h *PostHandler) readImage(c *gin.Context) (*services.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		case errors.As(err, &tooBig):
			return nil, errImageTooLarge
		}
		return nil, err
	}
	if fh.Size > h.maxUploadBytes {
		return nil, errImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{Filename: fh.Filename, Data: data}, nil
}

// Update PUT /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var upd services.PostUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	post, err := h.posts.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
