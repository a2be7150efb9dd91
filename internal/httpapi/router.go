package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/handler"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

// Services bundles everything the route table needs.
type Services struct {
	Auth     service.AuthService
	User     service.UserService
	Category service.CategoryService
	Genre    service.GenreService
	Title    service.TitleService
	Review   service.ReviewService
	Comment  service.CommentService
}

// SetupRouter wires the full route table. Reads are open, writes go through
// the role middleware; everything lives under /api/v1.
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.User)
	categoryHandler := handler.NewCategoryHandler(svc.Category)
	genreHandler := handler.NewGenreHandler(svc.Genre)
	titleHandler := handler.NewTitleHandler(svc.Title)
	reviewHandler := handler.NewReviewHandler(svc.Review)
	commentHandler := handler.NewCommentHandler(svc.Comment)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Authenticate(svc.Auth))
	v1.Use(middleware.Paginate(cfg.DefaultPageSize, cfg.MaxPageSize))

	auth := v1.Group("/auth", middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/token", authHandler.Token)

	users := v1.Group("/users")
	users.GET("", middleware.RequireAdmin(), userHandler.List)
	users.POST("", middleware.RequireAdmin(), userHandler.Create)
	users.GET("/:username", middleware.RequireAuthenticated(), userHandler.GetAny)
	users.PATCH("/:username", middleware.RequireAuthenticated(), userHandler.UpdateAny)
	users.DELETE("/:username", middleware.RequireAuthenticated(), userHandler.DeleteAny)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", middleware.RequireAdmin(), categoryHandler.Create)
	categories.DELETE("/:slug", middleware.RequireAdmin(), categoryHandler.Delete)

	genres := v1.Group("/genres")
	genres.GET("", genreHandler.List)
	genres.POST("", middleware.RequireAdmin(), genreHandler.Create)
	genres.DELETE("/:slug", middleware.RequireAdmin(), genreHandler.Delete)

	titles := v1.Group("/titles")
	titles.GET("", titleHandler.List)
	titles.POST("", middleware.RequireAdmin(), titleHandler.Create)
	titles.GET("/:title_id", titleHandler.Get)
	titles.PATCH("/:title_id", middleware.RequireAdmin(), titleHandler.Update)
	titles.DELETE("/:title_id", middleware.RequireAdmin(), titleHandler.Delete)

	reviews := titles.Group("/:title_id/reviews")
	reviews.GET("", reviewHandler.List)
	reviews.POST("", middleware.RequireAuthenticated(), reviewHandler.Create)
	reviews.GET("/:review_id", reviewHandler.Get)
	reviews.PATCH("/:review_id", middleware.RequireAuthenticated(), reviewHandler.Update)
	reviews.DELETE("/:review_id", middleware.RequireAuthenticated(), reviewHandler.Delete)

	comments := reviews.Group("/:review_id/comments")
	comments.GET("", commentHandler.List)
	comments.POST("", middleware.RequireAuthenticated(), commentHandler.Create)
	comments.GET("/:comment_id", commentHandler.Get)
	comments.PATCH("/:comment_id", middleware.RequireAuthenticated(), commentHandler.Update)
	comments.DELETE("/:comment_id", middleware.RequireAuthenticated(), commentHandler.Delete)

	return r
}
