package handlers

import (
	"net/http"

	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List GET /comments/:postId
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.comments.ListForPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in services.CreateCommentInput
	if err := c.ShouldBind(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	var upd services.CommentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
