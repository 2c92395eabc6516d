package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/utils"
)

func userNotFound(err error) error {
	if errors.Is(err, auth.ErrAccountNotFound) {
		return utils.NotFound("User")
	}
	return err
}

// GET /api/users
func (a *App) GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := a.Users.List(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /api/users/:id
func (a *App) UpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateUserDTO
		if !a.bind(c, &body) {
			return
		}

		patch := body.Patch()
		if patch.FullName != nil {
			name, err := requiredText("full_name", *patch.FullName)
			if err != nil {
				a.fail(c, err)
				return
			}
			patch.FullName = &name
		}
		if patch.Empty() {
			a.fail(c, utils.BadRequest("no updates provided"))
			return
		}

		user, err := a.Users.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), patch, a.now())
		if err != nil {
			a.fail(c, userNotFound(err))
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DELETE /api/users/:id
func (a *App) DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.Users.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
			a.fail(c, userNotFound(err))
			return
		}
		c.JSON(http.StatusOK, deleted("User"))
	}
}
