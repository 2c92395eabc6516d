package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/middleware"
	"github.com/princinho/schoolpanel/models"
)

// RegisterRoutes mounts the API under /api. Role gates run before any
// handler touches the database.
func (a *App) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")

	api.GET("/", a.Root())
	api.GET("/test", a.TestEndpoint())
	api.POST("/status", a.CreateStatusCheck())
	api.GET("/status", a.GetStatusChecks())

	api.POST("/init-admin", a.InitAdmin())
	api.POST("/auth/login", a.Login())

	api.GET("/school-info", a.GetSchoolInfo())
	api.GET("/gallery", a.GetGallery())
	api.GET("/contacts", a.GetContacts())
	api.GET("/schedule", a.GetSchedule())
	api.POST("/comments", a.CreateComment())

	authn := middleware.AuthMiddleware(a.Auth, a.log())

	editor := api.Group("", authn, middleware.RequireRole(models.RoleEditor, a.log()))
	{
		editor.GET("/auth/me", a.Me())
		editor.POST("/auth/password", a.ChangeMyPassword())

		editor.POST("/news", a.CreateNews())
		editor.GET("/news", a.GetNews())
		editor.GET("/news/:id", a.GetNewsByID())
		editor.PUT("/news/:id", a.UpdateNews())

		editor.POST("/school-info", a.CreateSchoolInfo())
		editor.PUT("/school-info/:id", a.UpdateSchoolInfo())

		editor.POST("/gallery", a.CreateGalleryItem())
		editor.PUT("/gallery/:id", a.UpdateGalleryItem())

		editor.POST("/contacts", a.CreateContact())
		editor.PUT("/contacts/:id", a.UpdateContact())

		editor.POST("/schedule", a.CreateScheduleEvent())
		editor.PUT("/schedule/:id", a.UpdateScheduleEvent())

		editor.GET("/comments", a.GetComments())
		editor.GET("/stats", a.GetStats())
	}

	moderator := api.Group("", authn, middleware.RequireRole(models.RoleModerator, a.log()))
	{
		moderator.DELETE("/news/:id", a.DeleteNews())
		moderator.DELETE("/school-info/:id", a.DeleteSchoolInfo())
		moderator.DELETE("/gallery/:id", a.DeleteGalleryItem())
		moderator.DELETE("/contacts/:id", a.DeleteContact())
		moderator.DELETE("/schedule/:id", a.DeleteScheduleEvent())
		moderator.PUT("/comments/:id", a.UpdateComment())
		moderator.DELETE("/comments/:id", a.DeleteComment())
	}

	admin := api.Group("", authn, middleware.RequireRole(models.RoleAdmin, a.log()))
	{
		admin.POST("/auth/register", a.Register())
		admin.GET("/users", a.GetUsers())
		admin.PUT("/users/:id", a.UpdateUser())
		admin.DELETE("/users/:id", a.DeleteUser())
	}
}
