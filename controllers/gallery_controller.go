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

func galleryCategory(raw string) string {
	if slug := utils.GenerateSlug(raw); slug != "" {
		return slug
	}
	return models.DefaultGalleryCategory
}

// POST /api/gallery
func (a *App) CreateGalleryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateGalleryDTO
		if !a.bind(c, &body) {
			return
		}

		title, err := requiredText("title", body.Title)
		if err != nil {
			a.fail(c, err)
			return
		}
		if err := a.checkImage(&body.Image); err != nil {
			a.fail(c, err)
			return
		}

		item := models.GalleryItem{
			ID:          uuid.NewString(),
			Title:       title,
			Description: body.Description,
			Image:       body.Image,
			Category:    galleryCategory(body.Category),
			IsActive:    true,
			CreatedAt:   a.now(),
		}
		if err := a.Docs.Insert(c.Request.Context(), database.GalleryCollection, item); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// GET /api/gallery?category=&limit=&skip=
func (a *App) GetGallery() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{"is_active": true}
		if cat := strings.TrimSpace(c.Query("category")); cat != "" {
			filter["category"] = utils.GenerateSlug(cat)
		}

		limit, skip := a.Limits.Paginate(c)
		q := database.Query{Sort: "created_at", Descending: true, Skip: skip, Limit: limit}

		items, err := findAll[models.GalleryItem](c.Request.Context(), a.Docs, database.GalleryCollection, filter, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /api/gallery/:id
func (a *App) UpdateGalleryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateGalleryDTO
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
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Image != nil {
			set["image"] = *body.Image
		}
		if body.Category != nil {
			set["category"] = galleryCategory(*body.Category)
		}
		if body.IsActive != nil {
			set["is_active"] = *body.IsActive
		}
		if len(set) == 0 {
			a.fail(c, utils.BadRequest("no updates provided"))
			return
		}

		item, err := updateByID[models.GalleryItem](c.Request.Context(), a.Docs, database.GalleryCollection, c.Param("id"), set, "Gallery item")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/gallery/:id
func (a *App) DeleteGalleryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deleteByID(c.Request.Context(), a.Docs, database.GalleryCollection, c.Param("id"), "Gallery item"); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted("Gallery item"))
	}
}
