package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const maxListedUsers = 1000

// UserStore keeps accounts in the users collection. It implements
// auth.CredentialStore plus the admin listing and editing operations.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{col: db.OpenCollection(UsersCollection)}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.D{})
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		if utils.IsDuplicateKey(err) {
			return auth.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"hashed_password": hash,
			"updated_at":      at,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetLimit(maxListedUsers).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, id string, patch models.UserPatch, at time.Time) (*models.User, error) {
	set := bson.M{"updated_at": at}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

// SeedAdmin inserts user only if no account has its email yet. It reports
// whether the insert happened.
func (s *UserStore) SeedAdmin(ctx context.Context, user *models.User) (bool, error) {
	filter := bson.M{"email": user.Email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":             user.ID,
			"email":           user.Email,
			"full_name":       user.FullName,
			"hashed_password": user.HashedPassword,
			"role":            user.Role,
			"is_active":       user.IsActive,
			"created_at":      user.CreatedAt,
			"updated_at":      user.UpdatedAt,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)
	res, err := s.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, fmt.Errorf("seed admin upsert failed: %w", err)
	}
	return res.UpsertedCount == 1, nil
}
