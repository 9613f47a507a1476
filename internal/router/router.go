package router

import (
	"inkwell/internal/handlers"
	"inkwell/internal/services"
	"inkwell/internal/storage"

	"github.com/gin-gonic/gin"
)

// Deps are the long-lived collaborators the handlers need. They are built
// once in main and shared by every request.
type Deps struct {
	Posts     *services.PostService
	Comments  *services.CommentService
	Favorites *services.FavoriteService
	Profiles  *services.ProfileService
	Store     storage.ObjectStore

	MaxUploadBytes int64
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	postHandler := handlers.NewPostHandler(d.Posts, d.MaxUploadBytes)
	imageHandler := handlers.NewImageHandler(d.Store)
	commentHandler := handlers.NewCommentHandler(d.Comments)
	favoriteHandler := handlers.NewFavoriteHandler(d.Favorites)
	profileHandler := handlers.NewProfileHandler(d.Profiles)

	// 文章
	posts := r.Group("/posts")
	{
		posts.GET("", postHandler.List)
		posts.GET("/search", postHandler.Search)
		posts.GET("/user/:userId", postHandler.ListByUser)
		posts.GET("/:id", postHandler.Detail)
		posts.POST("", postHandler.Create)
		posts.PUT("/:id", postHandler.Update)
		posts.DELETE("/:id", postHandler.Delete)
	}

	r.GET("/images/:key", imageHandler.Serve)

	// 评论
	comments := r.Group("/comments")
	{
		comments.GET("/:postId", commentHandler.List)
		comments.POST("", commentHandler.Create)
		comments.PUT("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// 收藏
	favorites := r.Group("/favorites")
	{
		favorites.GET("/:userId", favoriteHandler.List)
		favorites.POST("", favoriteHandler.Add)
		favorites.DELETE("", favoriteHandler.Remove)
	}

	r.GET("/profiles/:id", profileHandler.Show)
}
