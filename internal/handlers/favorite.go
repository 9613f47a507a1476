package handlers

import (
	"net/http"

	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type favoriteRequest struct {
	UserID string `json:"userId" form:"userId"`
	PostID string `json:"postId" form:"postId"`
}

// bindFavorite reads userId and postId from the body (JSON or form) and
// falls back to query parameters for anything the body left empty.
// A body that is present but cannot be decoded is an error.
func bindFavorite(c *gin.Context) (favoriteRequest, error) {
	var req favoriteRequest
	if err := c.ShouldBind(&req); err != nil && c.Request.ContentLength != 0 {
		return req, err
	}
	if req.UserID == "" {
		req.UserID = c.Query("userId")
	}
	if req.PostID == "" {
		req.PostID = c.Query("postId")
	}
	return req, nil
}

// List GET /favorites/:userId
func (h *FavoriteHandler) List(c *gin.Context) {
	favs, err := h.favorites.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

// Add POST /favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	req, err := bindFavorite(c)
	if err != nil {
		badRequest(c, "invalid request body")
		return
	}

	fav, existed, err := h.favorites.Add(c.Request.Context(), req.UserID, req.PostID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{"message": "Post already in favorites", "data": fav})
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// Remove DELETE /favorites
func (h *FavoriteHandler) Remove(c *gin.Context) {
	req, err := bindFavorite(c)
	if err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), req.UserID, req.PostID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
