package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/middleware"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /api/news
func (a *App) CreateNews() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateNewsDTO
		if !a.bind(c, &body) {
			return
		}

		news, err := a.newNews(body, middleware.CurrentUser(c))
		if err != nil {
			a.fail(c, err)
			return
		}

		if err := a.Docs.Insert(c.Request.Context(), database.NewsCollection, news); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, news)
	}
}

func (a *App) newNews(body dto.CreateNewsDTO, author *models.User) (*models.News, error) {
	title, err := requiredText("title", body.Title)
	if err != nil {
		return nil, err
	}
	if err := a.checkImage(body.Image); err != nil {
		return nil, err
	}

	status := models.NewsStatus(body.Status)
	if status == "" {
		status = models.NewsStatusDraft
	}

	now := a.now()
	news := &models.News{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   body.Content,
		Excerpt:   body.Excerpt,
		Image:     body.Image,
		Status:    status,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == models.NewsStatusPublished {
		news.PublishedAt = &now
	}
	return news, nil
}

// GET /api/news?status=&limit=&skip=
func (a *App) GetNews() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if s := strings.TrimSpace(c.Query("status")); s != "" {
			status := models.NewsStatus(s)
			if !status.Valid() {
				a.fail(c, utils.BadRequest("invalid status"))
				return
			}
			filter["status"] = status
		}

		limit, skip := a.Limits.Paginate(c)
		q := database.Query{Sort: "created_at", Descending: true, Skip: skip, Limit: limit}

		items, err := findAll[models.News](c.Request.Context(), a.Docs, database.NewsCollection, filter, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /api/news/:id
func (a *App) GetNewsByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		news, err := findByID[models.News](c.Request.Context(), a.Docs, database.NewsCollection, c.Param("id"), "News")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, news)
	}
}

// PUT /api/news/:id
// Editors may only edit their own articles.
func (a *App) UpdateNews() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateNewsDTO
		if !a.bind(c, &body) {
			return
		}
		if body == (dto.UpdateNewsDTO{}) {
			a.fail(c, utils.BadRequest("no updates provided"))
			return
		}
		if err := a.checkImage(body.Image); err != nil {
			a.fail(c, err)
			return
		}

		ctx := c.Request.Context()
		current, err := findByID[models.News](ctx, a.Docs, database.NewsCollection, c.Param("id"), "News")
		if err != nil {
			a.fail(c, err)
			return
		}
		if err := canEditNews(middleware.CurrentUser(c), current); err != nil {
			a.fail(c, err)
			return
		}

		set, err := newsUpdate(body, current, a.now())
		if err != nil {
			a.fail(c, err)
			return
		}

		news, err := updateByID[models.News](ctx, a.Docs, database.NewsCollection, current.ID, set, "News")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, news)
	}
}

func canEditNews(user *models.User, news *models.News) error {
	if user == nil {
		return auth.ErrForbidden
	}
	if user.Role.AtLeast(models.RoleModerator) || news.AuthorID == user.ID {
		return nil
	}
	return auth.ErrForbidden
}

// newsUpdate builds the $set document for body. published_at is stamped on
// the first transition into published.
func newsUpdate(body dto.UpdateNewsDTO, current *models.News, now time.Time) (bson.M, error) {
	set := bson.M{}
	if body.Title != nil {
		v, err := requiredText("title", *body.Title)
		if err != nil {
			return nil, err
		}
		set["title"] = v
	}
	if body.Content != nil {
		set["content"] = *body.Content
	}
	if body.Excerpt != nil {
		set["excerpt"] = *body.Excerpt
	}
	if body.Image != nil {
		set["image"] = *body.Image
	}
	if body.Status != nil {
		status := models.NewsStatus(*body.Status)
		set["status"] = status
		if status == models.NewsStatusPublished && current.Status != models.NewsStatusPublished {
			set["published_at"] = now
		}
	}

	if len(set) == 0 {
		return nil, utils.BadRequest("no updates provided")
	}
	set["updated_at"] = now
	return set, nil
}

// DELETE /api/news/:id
func (a *App) DeleteNews() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deleteByID(c.Request.Context(), a.Docs, database.NewsCollection, c.Param("id"), "News"); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted("News"))
	}
}
