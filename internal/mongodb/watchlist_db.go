package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ----- Types for the database -----

type WatchlistEntryDb struct {
	Id        string    `json:"id" bson:"_id"`
	UserId    string    `json:"userId" bson:"userId"`
	MovieId   string    `json:"movieId" bson:"movieId"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ----- Methods for the database -----

// AddWatchlistEntry inserts an entry; the unique (userId, movieId) index makes
// a duplicate add surface as a duplicate key error.
func (db *DB) AddWatchlistEntry(ctx context.Context, userId, movieId string) (WatchlistEntryDb, error) {
	coll := db.Collection(WatchlistCollection)

	now := time.Now()
	entry := WatchlistEntryDb{
		Id:        primitive.NewObjectID().Hex(),
		UserId:    userId,
		MovieId:   movieId,
		AddedAt:   now,
		CreatedAt: now,
	}

	_, err := coll.InsertOne(ctx, entry)
	if err != nil {
		return WatchlistEntryDb{}, err
	}

	return entry, nil
}

func (db *DB) DeleteWatchlistEntry(ctx context.Context, userId, movieId string) (bool, error) {
	coll := db.Collection(WatchlistCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"userId": userId, "movieId": movieId})
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}

func (db *DB) GetWatchlistByUserId(ctx context.Context, userId string) ([]WatchlistEntryDb, error) {
	coll := db.Collection(WatchlistCollection)

	cursor, err := coll.Find(ctx, bson.M{"userId": userId})
	if err != nil {
		return []WatchlistEntryDb{}, err
	}
	defer cursor.Close(ctx)

	var entries []WatchlistEntryDb
	if err := cursor.All(ctx, &entries); err != nil {
		return []WatchlistEntryDb{}, err
	}

	return entries, nil
}

func (db *DB) ClearWatchlistByUserId(ctx context.Context, userId string) (int64, error) {
	coll := db.Collection(WatchlistCollection)

	result, err := coll.DeleteMany(ctx, bson.M{"userId": userId})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (db *DB) WatchlistContains(ctx context.Context, userId, movieId string) (bool, error) {
	coll := db.Collection(WatchlistCollection)

	count, err := coll.CountDocuments(ctx, bson.M{"userId": userId, "movieId": movieId})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
