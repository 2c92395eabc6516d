package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/middleware"
	"github.com/princinho/schoolpanel/models"
)

// POST /api/auth/login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if !a.bind(c, &body) {
			return
		}

		res, err := a.Auth.Login(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": res.Token,
			"token_type":   "bearer",
			"user":         res.User,
		})
	}
}

// GET /api/auth/me
func (a *App) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.CurrentUser(c))
	}
}

// POST /api/auth/register
func (a *App) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterUserDTO
		if !a.bind(c, &body) {
			return
		}

		in := auth.RegisterInput{
			Email:    body.Email,
			FullName: body.FullName,
			Password: body.Password,
		}
		if strings.TrimSpace(body.Role) != "" {
			role, ok := models.ParseRole(body.Role)
			if !ok {
				a.fail(c, auth.ErrInvalidRole)
				return
			}
			in.Role = role
		}

		user, err := a.Auth.Register(c.Request.Context(), in)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /api/auth/password
func (a *App) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if !a.bind(c, &body) {
			return
		}

		user := middleware.CurrentUser(c)
		if err := a.Auth.ChangePassword(c.Request.Context(), user, body.CurrentPassword, body.NewPassword); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

// POST /api/init-admin
// Only works while no account exists.
func (a *App) InitAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Auth.Bootstrap(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		a.log().Info("bootstrap admin created", "email", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Admin user created successfully",
			"email":    auth.BootstrapEmail,
			"password": auth.BootstrapPassword,
		})
	}
}
