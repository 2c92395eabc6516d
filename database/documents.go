package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNotFound is returned when no document has the requested _id.
var ErrNotFound = errors.New("document not found")

// Query shapes a Find: one sort key plus skip/limit. A zero Limit means no limit.
type Query struct {
	Sort       string
	Descending bool
	Skip       int64
	Limit      int64
}

// Documents runs the single-document reads and writes the content handlers
// need against collections keyed by a string _id.
type Documents struct {
	db *DB
}

func NewDocuments(db *DB) *Documents {
	return &Documents{db: db}
}

func (d *Documents) Insert(ctx context.Context, collection string, doc any) error {
	_, err := d.db.OpenCollection(collection).InsertOne(ctx, doc)
	return err
}

func (d *Documents) Get(ctx context.Context, collection, id string, dst any) error {
	err := d.db.OpenCollection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// Find decodes every match into dst, which must point to a slice.
func (d *Documents) Find(ctx context.Context, collection string, filter bson.M, q Query, dst any) error {
	opts := options.Find()
	if q.Sort != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.Sort, Value: dir}})
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := d.db.OpenCollection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, dst)
}

// Update applies set and decodes the document as stored afterwards into dst.
func (d *Documents) Update(ctx context.Context, collection, id string, set bson.M, dst any) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := d.db.OpenCollection(collection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (d *Documents) Delete(ctx context.Context, collection, id string) error {
	res, err := d.db.OpenCollection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Documents) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return d.db.OpenCollection(collection).CountDocuments(ctx, filter)
}
