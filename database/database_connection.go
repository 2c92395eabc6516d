package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection        = "users"
	NewsCollection         = "news"
	SchoolInfoCollection   = "school_info"
	GalleryCollection      = "gallery"
	ContactsCollection     = "contacts"
	ScheduleCollection     = "schedule"
	CommentsCollection     = "comments"
	StatusChecksCollection = "status_checks"
)

const pingTimeout = 10 * time.Second

// DB is the shared MongoDB handle. The driver client is safe for concurrent use.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(ctx context.Context, uri, databaseName string) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &DB{Client: client, Database: client.Database(databaseName)}, nil
}

func (d *DB) OpenCollection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

func (d *DB) Disconnect(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the handlers rely on. The unique email
// index is what makes concurrent account creation (bootstrap included) safe.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		NewsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		CommentsCollection: {
			{Keys: bson.D{{Key: "news_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		ScheduleCollection: {
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "date", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := d.OpenCollection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
