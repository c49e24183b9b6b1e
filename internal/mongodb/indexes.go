package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAllIndexes creates all indexes for the users, movies, ratings and
// watchlist collections. The uniqueness constraints are load-bearing: the
// one-rating-per-user and one-watchlist-entry-per-movie invariants rely on
// them under concurrency.
func CreateAllIndexes(ctx context.Context, db *mongo.Database, reset bool) error {
	if err := CreateUserIndexes(ctx, db, reset); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	if err := CreateMovieIndexes(ctx, db, reset); err != nil {
		return fmt.Errorf("failed to create movie indexes: %w", err)
	}

	if err := CreateRatingIndexes(ctx, db, reset); err != nil {
		return fmt.Errorf("failed to create rating indexes: %w", err)
	}

	if err := CreateWatchlistIndexes(ctx, db, reset); err != nil {
		return fmt.Errorf("failed to create watchlist indexes: %w", err)
	}

	return nil
}

// CreateUserIndexes creates indexes for the users collection
func CreateUserIndexes(ctx context.Context, db *mongo.Database, reset bool) error {
	coll := db.Collection(UsersCollection)
	usersEmailIndexName := "email_unique"

	// Create unique index on email (case-insensitive)
	// Exclude empty strings and null values from uniqueness constraint
	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(usersEmailIndexName).
			SetCollation(&options.Collation{
				Locale:   "en",
				Strength: 2,
			}).
			SetPartialFilterExpression(bson.M{
				"$and": []bson.M{
					{"email": bson.M{"$type": "string"}},
					{"email": bson.M{"$gt": ""}},
				},
			}),
	}
	if err := createIndexIfNotExists(ctx, coll, emailIndex, usersEmailIndexName, reset); err != nil {
		return err
	}

	return nil
}

// CreateMovieIndexes creates indexes for the movies collection
func CreateMovieIndexes(ctx context.Context, db *mongo.Database, reset bool) error {
	coll := db.Collection(MoviesCollection)

	// Create unique index on imdbId, excluding documents without one
	moviesImdbIndexName := "imdbId_unique"
	imdbIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "imdbId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(moviesImdbIndexName).
			SetPartialFilterExpression(bson.M{
				"$and": []bson.M{
					{"imdbId": bson.M{"$type": "string"}},
					{"imdbId": bson.M{"$gt": ""}},
				},
			}),
	}
	if err := createIndexIfNotExists(ctx, coll, imdbIndex, moviesImdbIndexName, reset); err != nil {
		return err
	}

	// Create text index for full-text search on title, description and director
	moviesTextIndexName := "movies_text_search"
	textIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "director", Value: "text"},
		},
		Options: options.Index().
			SetName(moviesTextIndexName),
	}
	if err := createIndexIfNotExists(ctx, coll, textIndex, moviesTextIndexName, reset); err != nil {
		return err
	}

	return nil
}

// CreateRatingIndexes creates indexes for the ratings collection
func CreateRatingIndexes(ctx context.Context, db *mongo.Database, reset bool) error {
	coll := db.Collection(RatingsCollection)
	ratingsIndexName := "userId_and_movieId_unique"

	// Create unique index on userId and movieId
	ratingsIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(ratingsIndexName),
	}
	if err := createIndexIfNotExists(ctx, coll, ratingsIndex, ratingsIndexName, reset); err != nil {
		return err
	}

	return nil
}

// CreateWatchlistIndexes creates indexes for the watchlist collection
func CreateWatchlistIndexes(ctx context.Context, db *mongo.Database, reset bool) error {
	coll := db.Collection(WatchlistCollection)
	watchlistIndexName := "userId_and_movieId_unique"

	// Create unique index on userId and movieId
	watchlistIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(watchlistIndexName),
	}
	if err := createIndexIfNotExists(ctx, coll, watchlistIndex, watchlistIndexName, reset); err != nil {
		return err
	}

	return nil
}

// createIndexIfNotExists checks if an index exists and creates it if it doesn't
// If reset is true, it will delete the existing index and recreate it
func createIndexIfNotExists(ctx context.Context, coll *mongo.Collection, indexModel mongo.IndexModel, indexName string, reset bool) error {
	// List existing indexes
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	// Check if index already exists
	indexExists := false
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			return fmt.Errorf("failed to decode index: %w", err)
		}

		if name, ok := index["name"].(string); ok && name == indexName {
			indexExists = true
			break
		}
	}

	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor error: %w", err)
	}

	if indexExists {
		if !reset {
			return nil
		}
		// Delete the existing index
		_, err := coll.Indexes().DropOne(ctx, indexName)
		if err != nil {
			return fmt.Errorf("failed to delete index '%s': %w", indexName, err)
		}
	}

	// Create the index
	_, err = coll.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create index '%s': %w", indexName, err)
	}

	return nil
}
