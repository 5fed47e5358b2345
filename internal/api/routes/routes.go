package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/api/handlers"
	"github.com/shoply/jobboard/internal/api/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Shop        *handlers.ShopHandler
	Vacancy     *handlers.VacancyHandler
	Application *handlers.ApplicationHandler
	Comment     *handlers.CommentHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/token/", d.Auth.ObtainPair)
	r.POST("/token/refresh/", d.Auth.Refresh)

	auth := middleware.JWTAuth()
	owner := middleware.RequireShopOwner()
	seeker := middleware.RequireJobSeeker()

	users := r.Group("/users")
	{
		users.GET("/", d.User.List)
		users.POST("/", d.User.Register)
		users.POST("/change_password/", auth, d.User.ChangePassword)
		users.PUT("/update_profile/", auth, d.User.UpdateProfile)
		users.PATCH("/update_profile/", auth, d.User.UpdateProfile)
		users.GET("/me/", auth, d.User.Me)
		users.GET("/:id/", d.User.Retrieve)
		users.PUT("/:id/", auth, d.User.Update)
		users.PATCH("/:id/", auth, d.User.Update)
		users.DELETE("/:id/", auth, d.User.Delete)
	}

	shops := r.Group("/shops")
	{
		shops.GET("/", d.Shop.List)
		shops.POST("/", auth, owner, d.Shop.Create)
		shops.GET("/my_shop/", auth, owner, d.Shop.MyShop)
		shops.GET("/analytics/", auth, owner, d.Shop.Analytics)
		shops.GET("/:id/", d.Shop.Retrieve)
		shops.PUT("/:id/", auth, owner, d.Shop.Update)
		shops.PATCH("/:id/", auth, owner, d.Shop.Update)
		shops.DELETE("/:id/", auth, owner, d.Shop.Delete)
		shops.POST("/:id/verify/", auth, d.Shop.Verify)
	}

	jobs := r.Group("/jobs")
	{
		jobs.GET("/", d.Vacancy.List)
		jobs.POST("/", auth, owner, d.Vacancy.Create)
		jobs.GET("/:id/", d.Vacancy.Retrieve)
		jobs.PUT("/:id/", auth, owner, d.Vacancy.Update)
		jobs.PATCH("/:id/", auth, owner, d.Vacancy.Update)
		jobs.DELETE("/:id/", auth, owner, d.Vacancy.Delete)
		jobs.POST("/:id/apply/", auth, seeker, d.Vacancy.Apply)
		jobs.POST("/:id/bulk_reject_pending/", auth, owner, d.Vacancy.BulkRejectPending)
		jobs.GET("/:id/export_applicants_csv/", auth, owner, d.Vacancy.ExportApplicantsCSV)
		jobs.POST("/:id/comment/", auth, d.Vacancy.Comment)
	}

	applications := r.Group("/applications", auth)
	{
		applications.GET("/", d.Application.List)
		applications.POST("/", d.Application.Create)
		applications.GET("/:id/", d.Application.Retrieve)
		applications.PUT("/:id/", d.Application.Update)
		applications.PATCH("/:id/", d.Application.Update)
		applications.DELETE("/:id/", d.Application.Delete)
	}

	comments := r.Group("/comments", auth)
	{
		comments.GET("/", d.Comment.List)
		comments.POST("/", d.Comment.Create)
		comments.GET("/:id/", d.Comment.Retrieve)
		comments.PUT("/:id/", d.Comment.Update)
		comments.PATCH("/:id/", d.Comment.Update)
		comments.DELETE("/:id/", d.Comment.Delete)
	}
}
