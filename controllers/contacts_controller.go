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

// POST /api/contacts
func (a *App) CreateContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateContactDTO
		if !a.bind(c, &body) {
			return
		}

		kind, err := requiredText("type", body.Type)
		if err != nil {
			a.fail(c, err)
			return
		}
		label, err := requiredText("label", body.Label)
		if err != nil {
			a.fail(c, err)
			return
		}
		value, err := requiredText("value", body.Value)
		if err != nil {
			a.fail(c, err)
			return
		}

		contact := models.Contact{
			ID:        uuid.NewString(),
			Type:      kind,
			Label:     label,
			Value:     value,
			IsActive:  true,
			Order:     body.Order,
			UpdatedAt: a.now(),
		}
		if err := a.Docs.Insert(c.Request.Context(), database.ContactsCollection, contact); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, contact)
	}
}

// GET /api/contacts
func (a *App) GetContacts() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := database.Query{Sort: "order", Limit: maxSectionItems}

		items, err := findAll[models.Contact](c.Request.Context(), a.Docs, database.ContactsCollection, bson.M{"is_active": true}, q)
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /api/contacts/:id
func (a *App) UpdateContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateContactDTO
		if !a.bind(c, &body) {
			return
		}

		set := bson.M{}
		if body.Label != nil {
			v, err := requiredText("label", *body.Label)
			if err != nil {
				a.fail(c, err)
				return
			}
			set["label"] = v
		}
		if body.Value != nil {
			v, err := requiredText("value", *body.Value)
			if err != nil {
				a.fail(c, err)
				return
			}
			set["value"] = v
		}
		if body.IsActive != nil {
			set["is_active"] = *body.IsActive
		}
		if body.Order != nil {
			set["order"] = *body.Order
		}
		if len(set) == 0 {
			a.fail(c, utils.BadRequest("no updates provided"))
			return
		}
		set["updated_at"] = a.now()

		contact, err := updateByID[models.Contact](c.Request.Context(), a.Docs, database.ContactsCollection, c.Param("id"), set, "Contact")
		if err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, contact)
	}
}

// DELETE /api/contacts/:id
func (a *App) DeleteContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deleteByID(c.Request.Context(), a.Docs, database.ContactsCollection, c.Param("id"), "Contact"); err != nil {
			a.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, deleted("Contact"))
	}
}
