package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /api/schedule
func (a *App) CreateScheduleEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateScheduleDTO
		if !a.bind(c, &body) {
			return
		}

		title, err := requiredText("title", body.Title)
		if err != nil {
			a.fail(c, err)
			return
		}
		date, err := utils.ParseDateTime(body.Date)
		if err != nil {
			a.fail(c, utils.BadRequest(err.Error()))
			return
		}

		event := models.ScheduleEvent{
			ID:          uuid.NewString(),
			Title:       title,
			Description: body.Description,
			Date:        date,
			Time:        body.Time,
			Location:    body.Location,
			IsActive:    true,
			CreatedAt:   a.now(),
		}
		if err := a.Docs.Insert(c.Request.Context(), database.ScheduleCollection, event); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// GET /api/schedule?limit=&skip=
func (a *App) GetSchedule() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, skip := a.Limits.Paginate(c)
		q := database.Query{Sort: "date", Skip: skip, Limit: limit}

		items, err := findAll[models.ScheduleEvent](c.Request.Context(), a.Docs, database.ScheduleCollection, bson.M{"is_active": true}, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func scheduleUpdate(body dto.UpdateScheduleDTO) (bson.M, error) {
	set := bson.M{}
	if body.Title != nil {
		v, err := requiredText("title", *body.Title)
		if err != nil {
			return nil, err
		}
		set["title"] = v
	}
	if body.Description != nil {
		set["description"] = *body.Description
	}
	if body.Date != nil {
		date, err := utils.ParseDateTime(*body.Date)
		if err != nil {
			return nil, utils.BadRequest(err.Error())
		}
		set["date"] = date
	}
	if body.Time != nil {
		set["time"] = *body.Time
	}
	if body.Location != nil {
		set["location"] = *body.Location
	}
	if body.IsActive != nil {
		set["is_active"] = *body.IsActive
	}
	if len(set) == 0 {
		return nil, utils.BadRequest("no updates provided")
	}
	return set, nil
}

// PUT /api/schedule/:id
func (a *App) UpdateScheduleEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateScheduleDTO
		if !a.bind(c, &body) {
			return
		}
		set, err := scheduleUpdate(body)
		if err != nil {
			a.fail(c, err)
			return
		}

		event, err := updateByID[models.ScheduleEvent](c.Request.Context(), a.Docs, database.ScheduleCollection, c.Param("id"), set, "Schedule item")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// DELETE /api/schedule/:id
func (a *App) DeleteScheduleEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deleteByID(c.Request.Context(), a.Docs, database.ScheduleCollection, c.Param("id"), "Schedule item"); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted("Schedule item"))
	}
}
