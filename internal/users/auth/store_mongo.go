// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/taibuivan/usergate/internal/platform/apperr"
)

// # Mongo Repository

// MongoUserRepository implements UserRepository on a single collection whose
// documents are {username, email, name, disabled, hashed_password}.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository wraps an existing collection handle.
func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

// EnsureIndexes creates the unique username index if it is missing.
func (repository *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repository.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: FieldUsername, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo_user_repo_ensure_indexes_failed: %w", err)
	}
	return nil
}

/*
FindByUsername retrieves the document matching the username.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated entity
  - error: ErrUserNotFound or store failures
*/
func (repository *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := repository.collection.FindOne(ctx, bson.M{FieldUsername: username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.StoreUnavailable(fmt.Errorf("mongo_user_repo_find_by_username_failed: %w", err))
	}

	return user, nil
}

/*
Create inserts a new document.

Returns:
  - error: ErrUserExists on a duplicate username, or store failures
*/
func (repository *MongoUserRepository) Create(ctx context.Context, user *User) error {
	if _, err := repository.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserExists
		}
		return apperr.StoreUnavailable(fmt.Errorf("mongo_user_repo_create_failed: %w", err))
	}
	return nil
}

/*
UpdateFields applies a $set of the supplied fields.

Returns:
  - error: ErrUserNotFound when no document matched, or store failures
*/
func (repository *MongoUserRepository) UpdateFields(ctx context.Context, username string, changes Changes) error {
	set := bson.M{}
	for field, value := range changes.Fields() {
		set[field] = value
	}

	result, err := repository.collection.UpdateOne(ctx,
		bson.M{FieldUsername: username},
		bson.M{"$set": set},
	)
	if err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("mongo_user_repo_update_failed: %w", err))
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

/*
Delete removes the document matching the username.

Returns:
  - error: ErrUserNotFound when no document matched, or store failures
*/
func (repository *MongoUserRepository) Delete(ctx context.Context, username string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.M{FieldUsername: username})
	if err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("mongo_user_repo_delete_failed: %w", err))
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Ping checks that the primary of the collection's deployment answers.
func (repository *MongoUserRepository) Ping(ctx context.Context) error {
	if err := repository.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("mongo_user_repo_ping_failed: %w", err))
	}
	return nil
}
