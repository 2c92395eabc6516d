package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /api/school-info
func (a *App) CreateSchoolInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateSchoolInfoDTO
		if !a.bind(c, &body) {
			return
		}

		section := utils.GenerateSlug(body.Section)
		if section == "" {
			a.fail(c, utils.BadRequest("section cannot be empty"))
			return
		}
		title, err := requiredText("title", body.Title)
		if err != nil {
			a.fail(c, err)
			return
		}
		if err := a.checkImage(body.Image); err != nil {
			a.fail(c, err)
			return
		}

		info := models.SchoolInfo{
			ID:        uuid.NewString(),
			Section:   section,
			Title:     title,
			Content:   body.Content,
			Image:     body.Image,
			Order:     body.Order,
			IsActive:  true,
			UpdatedAt: a.now(),
		}
		if err := a.Docs.Insert(c.Request.Context(), database.SchoolInfoCollection, info); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// GET /api/school-info?section=
func (a *App) GetSchoolInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{"is_active": true}
		if s := strings.TrimSpace(c.Query("section")); s != "" {
			filter["section"] = utils.GenerateSlug(s)
		}

		q := database.Query{Sort: "order", Limit: maxSectionItems}

		items, err := findAll[models.SchoolInfo](c.Request.Context(), a.Docs, database.SchoolInfoCollection, filter, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /api/school-info/:id
func (a *App) UpdateSchoolInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateSchoolInfoDTO
		if !a.bind(c, &body) {
			return
		}
		if err := a.checkImage(body.Image); err != nil {
			a.fail(c, err)
			return
		}

		set := bson.M{}
		if body.Title != nil {
			v, err := requiredText("title", *body.Title)
			if err != nil {
				a.fail(c, err)
				return
			}
			set["title"] = v
		}
		if body.Content != nil {
			set["content"] = *body.Content
		}
		if body.Image != nil {
			set["image"] = *body.Image
		}
		if body.Order != nil {
			set["order"] = *body.Order
		}
		if body.IsActive != nil {
			set["is_active"] = *body.IsActive
		}
		if len(set) == 0 {
			a.fail(c, utils.BadRequest("no updates provided"))
			return
		}
		set["updated_at"] = a.now()

		info, err := updateByID[models.SchoolInfo](c.Request.Context(), a.Docs, database.SchoolInfoCollection, c.Param("id"), set, "School info")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// DELETE /api/school-info/:id
func (a *App) DeleteSchoolInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deleteByID(c.Request.Context(), a.Docs, database.SchoolInfoCollection, c.Param("id"), "School info"); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted("School info"))
	}
}
