package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const maxStatusChecks = 1000

// GET /api/stats
func (a *App) GetStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := a.siteStats(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func (a *App) siteStats(ctx context.Context) (*models.SiteStats, error) {
	users, err := a.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	news, err := a.Docs.Count(ctx, database.NewsCollection, bson.M{})
	if err != nil {
		return nil, err
	}
	total, err := a.Docs.Count(ctx, database.CommentsCollection, bson.M{})
	if err != nil {
		return nil, err
	}
	pending, err := a.Docs.Count(ctx, database.CommentsCollection, bson.M{"is_approved": false})
	if err != nil {
		return nil, err
	}

	return &models.SiteStats{
		TotalUsers:      users,
		TotalNews:       news,
		TotalComments:   total,
		PendingComments: pending,
		Date:            a.now(),
	}, nil
}

// GET /api/
func (a *App) Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "School Admin Panel API"})
	}
}

// GET /api/test
func (a *App) TestEndpoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Test endpoint is working"})
	}
}

// POST /api/status
func (a *App) CreateStatusCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.StatusCheckDTO
		if !a.bind(c, &body) {
			return
		}

		check := models.StatusCheck{
			ID:         uuid.NewString(),
			ClientName: body.ClientName,
			Timestamp:  a.now(),
		}
		if err := a.Docs.Insert(c.Request.Context(), database.StatusChecksCollection, check); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, check)
	}
}

// GET /api/status
func (a *App) GetStatusChecks() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := database.Query{Limit: maxStatusChecks}
		items, err := findAll[models.StatusCheck](c.Request.Context(), a.Docs, database.StatusChecksCollection, bson.M{}, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
