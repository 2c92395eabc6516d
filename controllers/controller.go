package controllers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// small fixed lists returned whole, as the admin UI renders them in one page
const maxSectionItems = 100

// UserRepository is the account store plus the admin-only operations.
type UserRepository interface {
	auth.CredentialStore
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch, at time.Time) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// DocumentStore is the content persistence; database.Documents in production.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, doc any) error
	Get(ctx context.Context, collection, id string, dst any) error
	Find(ctx context.Context, collection string, filter bson.M, q database.Query, dst any) error
	Update(ctx context.Context, collection, id string, set bson.M, dst any) error
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
}

// App carries the dependencies shared by every handler.
type App struct {
	Auth   *auth.Service
	Users  UserRepository
	Docs   DocumentStore
	Limits utils.QueryLimits
	Images *utils.ImageValidator
	Logger *slog.Logger
	Now    func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *App) fail(c *gin.Context, err error) {
	utils.RespondError(c, a.log(), err)
}

// bind decodes the JSON body into dst and answers 400 on failure.
func (a *App) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		a.fail(c, utils.BadRequest(err.Error()))
		return false
	}
	return true
}

func (a *App) checkImage(image *string) error {
	if image == nil {
		return nil
	}
	if _, err := a.Images.Validate(*image); err != nil {
		return utils.BadRequest(err.Error())
	}
	return nil
}

func deleted(resource string) gin.H {
	return gin.H{"message": resource + " deleted successfully"}
}

// requiredText trims v and rejects blank values.
func requiredText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", utils.BadRequest(field + " cannot be empty")
	}
	return v, nil
}

// notFound turns a missing document into a 404 naming resource.
func notFound(err error, resource string) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFound(resource)
	}
	return err
}

func findByID[T any](ctx context.Context, docs DocumentStore, collection, id, resource string) (*T, error) {
	var doc T
	if err := docs.Get(ctx, collection, id, &doc); err != nil {
		return nil, notFound(err, resource)
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, docs DocumentStore, collection string, filter bson.M, q database.Query) ([]T, error) {
	items := make([]T, 0)
	if err := docs.Find(ctx, collection, filter, q, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// updateByID applies set and returns the document as stored afterwards.
func updateByID[T any](ctx context.Context, docs DocumentStore, collection, id string, set bson.M, resource string) (*T, error) {
	var doc T
	if err := docs.Update(ctx, collection, id, set, &doc); err != nil {
		return nil, notFound(err, resource)
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, docs DocumentStore, collection, id, resource string) error {
	return notFound(docs.Delete(ctx, collection, id), resource)
}
