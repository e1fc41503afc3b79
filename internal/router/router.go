package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wolfeagle1193/tukki-api-sub000/config"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/controller"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	entityController     *controller.EntityController
	engagementController *controller.EngagementController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	entityController *controller.EntityController,
	engagementController *controller.EngagementController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		entityController:     entityController,
		engagementController: engagementController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TUKKI API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.OptionalAuthenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		// Every content collection gets the same route shape; comment and
		// photo walls are registered only where the kind supports them.
		for _, kind := range model.AllEntityKinds {
			r.registerEntityRoutes(v1, kind)
		}

		users := v1.Group("/users", r.authMiddleware.Authenticate())
		{
			users.GET("/me/favorites", r.engagementController.ListMyFavorites)
		}

		upload := v1.Group("/upload", r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GetPresignedURL)
		}
	}

	return router
}

func (r *Router) registerEntityRoutes(v1 *gin.RouterGroup, kind model.EntityKind) {
	g := v1.Group("/" + kind.Slug())

	// public reads
	g.GET("", r.entityController.List(kind))
	g.GET("/:id", r.entityController.Get(kind))
	g.GET("/:id/reviews", r.engagementController.ListReviews(kind))

	// CMS-managed content
	admin := g.Group("", r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(string(model.RoleAdmin)))
	{
		admin.POST("", r.entityController.Create(kind))
		admin.PUT("/:id", r.entityController.Update(kind))
		admin.DELETE("/:id", r.entityController.Delete(kind))
	}

	// engagement
	authed := g.Group("", r.authMiddleware.Authenticate())
	{
		authed.POST("/:id/favorite", r.engagementController.ToggleFavorite(kind))
		authed.POST("/:id/likes", r.engagementController.ToggleLike(kind))
		authed.POST("/:id/reviews", r.engagementController.AddReview(kind))
		authed.PUT("/:id/reviews/:review_id", r.engagementController.UpdateReview)
		authed.DELETE("/:id/reviews/:review_id", r.engagementController.DeleteReview)
		authed.POST("/:id/reviews/:review_id/replies", r.engagementController.AddReply)
		authed.DELETE("/:id/reviews/:review_id/replies/:reply_id", r.engagementController.DeleteReply)
	}

	if kind.HasCommentWall() {
		g.GET("/:id/comments", r.engagementController.ListComments(kind))
		g.GET("/:id/photos", r.engagementController.ListPhotos(kind))

		authed.POST("/:id/comments", r.engagementController.AddComment(kind))
		authed.DELETE("/:id/comments/:comment_id", r.engagementController.DeleteComment)
		authed.POST("/:id/photos", r.engagementController.AddPhoto(kind))
		authed.DELETE("/:id/photos/:photo_id", r.engagementController.DeletePhoto)
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
