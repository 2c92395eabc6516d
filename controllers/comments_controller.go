package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/middleware"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /api/comments
// Public. New comments wait for moderation.
func (a *App) CreateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateCommentDTO
		if !a.bind(c, &body) {
			return
		}
		content, err := requiredText("content", body.Content)
		if err != nil {
			a.fail(c, err)
			return
		}
		author, err := requiredText("author_name", body.AuthorName)
		if err != nil {
			a.fail(c, err)
			return
		}

		newsID := strings.TrimSpace(body.NewsID)
		if _, err := findByID[models.News](ctx, a.Docs, database.NewsCollection, newsID, "News"); err != nil {
			a.fail(c, err)
			return
		}

		comment := models.Comment{
			ID:          uuid.NewString(),
			Content:     content,
			AuthorName:  author,
			AuthorEmail: body.AuthorEmail,
			NewsID:      newsID,
			IsApproved:  false,
			CreatedAt:   a.now(),
		}
		if err := a.Docs.Insert(ctx, database.CommentsCollection, comment); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, comment)
	}
}

// commentsFilter hides unapproved comments from editors unless they pass
// approved_only=false. Moderators always see every comment.
func commentsFilter(c *gin.Context, user *models.User) (bson.M, error) {
	filter := bson.M{}
	if id := strings.TrimSpace(c.Query("news_id")); id != "" {
		filter["news_id"] = id
	}

	approvedOnly, err := utils.ParseBoolQuery(c.Query("approved_only"))
	if err != nil {
		return nil, utils.BadRequest("invalid approved_only")
	}
	moderator := user != nil && user.Role.AtLeast(models.RoleModerator)
	if !moderator && (approvedOnly == nil || *approvedOnly) {
		filter["is_approved"] = true
	}
	return filter, nil
}

// GET /api/comments?news_id=&approved_only=&limit=&skip=
func (a *App) GetComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := commentsFilter(c, middleware.CurrentUser(c))
		if err != nil {
			a.fail(c, err)
			return
		}

		limit, skip := a.Limits.Paginate(c)
		q := database.Query{Sort: "created_at", Descending: true, Skip: skip, Limit: limit}

		items, err := findAll[models.Comment](c.Request.Context(), a.Docs, database.CommentsCollection, filter, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /api/comments/:id
func (a *App) UpdateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateCommentDTO
		if !a.bind(c, &body) {
			return
		}
		if body.IsApproved == nil {
			a.fail(c, utils.BadRequest("no updates provided"))
			return
		}

		set := bson.M{"is_approved": *body.IsApproved}
		comment, err := updateByID[models.Comment](c.Request.Context(), a.Docs, database.CommentsCollection, c.Param("id"), set, "Comment")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, comment)
	}
}

// DELETE /api/comments/:id
func (a *App) DeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deleteByID(c.Request.Context(), a.Docs, database.CommentsCollection, c.Param("id"), "Comment"); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted("Comment"))
	}
}
