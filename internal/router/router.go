package router

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/controller"
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler the router mounts.
type Controllers struct {
	Auth       *controller.AuthController
	User       *controller.UserController
	Doctor     *controller.DoctorController
	Attraction *controller.AttractionController
	Category   *controller.CategoryController
	Review     *controller.ReviewController
	Engagement *controller.EngagementController
	Analytics  *controller.AnalyticsController
	Upload     *controller.UploadController
	Feed       *controller.FeedController
	Live       *controller.LiveController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

var subjectPaths = []struct {
	kind model.SubjectType
	path string
}{
	{model.SubjectDoctor, "/doctors"},
	{model.SubjectAttraction, "/attractions"},
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Dalil Mashhad API is running",
		})
	})

	ctl := r.controllers
	auth := r.authMiddleware

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", ctl.Auth.Login)
			authGroup.POST("/logout", ctl.Auth.Logout)
			authGroup.GET("/me", auth.Authenticate(), ctl.Auth.Me)
		}

		v1.GET("/categories", ctl.Category.ListCategories)
		v1.GET("/attraction-categories", ctl.Category.ListAttractionCategories)
		v1.GET("/attraction-categories/:slug", ctl.Category.GetAttractionCategory)

		v1.GET("/doctors", ctl.Doctor.ListPublic)
		v1.GET("/doctors/:id", ctl.Doctor.GetPublic)
		v1.GET("/attractions", ctl.Attraction.ListPublic)
		v1.GET("/attractions/:id", ctl.Attraction.GetPublic)

		// Likes and review submission are open to anonymous visitors.
		for _, s := range subjectPaths {
			v1.GET(s.path+"/:id/like", ctl.Engagement.IsLiked(s.kind))
			v1.POST(s.path+"/:id/like", ctl.Engagement.ToggleLike(s.kind))
			v1.GET(s.path+"/:id/reviews", ctl.Review.ListApproved(s.kind))
			v1.POST(s.path+"/:id/reviews", ctl.Review.Submit(s.kind))
		}
		v1.GET("/reviews/:id/replies", ctl.Review.ListReplies)

		v1.GET("/feed.rss", ctl.Feed.RSS)
	}

	admin := v1.Group("/admin", auth.Authenticate())
	{
		edit := auth.RequireRole(model.EditRoles...)
		remove := auth.RequireRole(model.DeleteRoles...)
		manage := auth.RequireRole(model.ManageRoles...)

		admin.GET("/dashboard", ctl.Analytics.Dashboard)
		admin.GET("/analytics", remove, ctl.Analytics.Report)

		doctors := admin.Group("/doctors")
		{
			doctors.GET("", ctl.Doctor.List)
			doctors.GET("/:id", ctl.Doctor.Get)
			doctors.POST("", edit, ctl.Doctor.Create)
			doctors.PUT("/:id", edit, ctl.Doctor.Update)
			doctors.PATCH("/:id/toggle", remove, ctl.Doctor.ToggleActive)
			doctors.DELETE("/:id", remove, ctl.Doctor.Delete)
		}

		attractions := admin.Group("/attractions")
		{
			attractions.GET("", ctl.Attraction.List)
			attractions.GET("/:id", ctl.Attraction.Get)
			attractions.POST("", edit, ctl.Attraction.Create)
			attractions.PUT("/:id", edit, ctl.Attraction.Update)
			attractions.PATCH("/:id/toggle", remove, ctl.Attraction.ToggleActive)
			attractions.PATCH("/:id/featured", edit, ctl.Attraction.ToggleFeatured)
			attractions.DELETE("/:id", remove, ctl.Attraction.Delete)
		}

		categories := admin.Group("/categories")
		{
			categories.POST("", remove, ctl.Category.CreateCategory)
			categories.PUT("/:id", remove, ctl.Category.UpdateCategory)
			categories.DELETE("/:id", remove, ctl.Category.DeleteCategory)
		}

		attractionCategories := admin.Group("/attraction-categories")
		{
			attractionCategories.GET("", ctl.Category.ListAllAttractionCategories)
			attractionCategories.POST("", edit, ctl.Category.CreateAttractionCategory)
			attractionCategories.PUT("/:id", edit, ctl.Category.UpdateAttractionCategory)
			attractionCategories.PATCH("/:id/toggle", remove, ctl.Category.ToggleAttractionCategory)
			attractionCategories.DELETE("/:id", remove, ctl.Category.DeleteAttractionCategory)
		}

		// Moderation checks the role again inside the review service.
		reviews := admin.Group("/reviews")
		reviews.GET("/live", edit, ctl.Live.Reviews)
		for _, s := range subjectPaths {
			reviews.GET(s.path, ctl.Review.List(s.kind))
			reviews.POST(s.path+"/:id/approve", ctl.Review.Approve(s.kind))
			reviews.POST(s.path+"/:id/unapprove", ctl.Review.Unapprove(s.kind))
			reviews.DELETE(s.path+"/:id", ctl.Review.Delete(s.kind))
		}
		reviews.POST("/doctors/:id/replies", ctl.Review.Reply)

		admin.POST("/upload/presigned-url", edit, ctl.Upload.GeneratePresignedURL)

		users := admin.Group("/users", manage)
		{
			users.GET("", ctl.User.List)
			users.POST("", ctl.User.Create)
			users.PATCH("/:id/toggle", ctl.User.ToggleActive)
			users.DELETE("/:id", ctl.User.Delete)
		}
	}

	return router
}
