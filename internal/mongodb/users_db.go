package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ----- Types for the database -----

type UserDb struct {
	Id           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"passwordHash" bson:"passwordHash"`
	AvatarUrl    *string   `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Role         string    `json:"role" bson:"role"`
	IsBanned     bool      `json:"isBanned" bson:"isBanned"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ----- Methods for the database -----

func (db *DB) AddUser(ctx context.Context, user UserDb) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := coll.InsertOne(ctx, user)
	if err != nil {
		return UserDb{}, err
	}

	return user, nil
}

func (db *DB) GetUserById(ctx context.Context, id string) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	var user UserDb
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return user, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	var user UserDb
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return user, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]UserDb, error) {
	coll := db.Collection(UsersCollection)

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return []UserDb{}, err
	}
	defer cursor.Close(ctx)

	var allUsers []UserDb
	if err := cursor.All(ctx, &allUsers); err != nil {
		return []UserDb{}, err
	}

	return allUsers, nil
}

func (db *DB) UpdateUserFields(ctx context.Context, userId string, fields bson.M) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	fields["updatedAt"] = time.Now()
	update := bson.M{"$set": fields}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": userId}, update)
	if err != nil {
		return UserDb{}, err
	}
	if result.MatchedCount == 0 {
		return UserDb{}, ErrRecordNotFound
	}

	return db.GetUserById(ctx, userId)
}

func (db *DB) DeleteUserById(ctx context.Context, userId string) (bool, error) {
	coll := db.Collection(UsersCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"_id": userId})
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}
