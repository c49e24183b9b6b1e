package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ----- Types for the database -----

type RatingDb struct {
	Id           string    `json:"id" bson:"_id"`
	MovieId      string    `json:"movieId" bson:"movieId"`
	UserId       string    `json:"userId" bson:"userId"`
	Rating       int       `json:"rating" bson:"rating"`
	Review       string    `json:"review" bson:"review"`
	IsPublic     bool      `json:"isPublic" bson:"isPublic"`
	HelpfulVotes int       `json:"helpfulVotes" bson:"helpfulVotes"`
	HelpfulBy    []string  `json:"helpfulBy" bson:"helpfulBy"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RatingStatsDb is the result of a $group over the ratings collection.
type RatingStatsDb struct {
	AverageRating float64 `bson:"averageRating"`
	TotalRatings  int     `bson:"totalRatings"`
	TotalReviews  int     `bson:"totalReviews"`
}

// ----- Methods for the database -----

func (db *DB) AddRating(ctx context.Context, rating RatingDb) (RatingDb, error) {
	coll := db.Collection(RatingsCollection)

	rating.Id = primitive.NewObjectID().Hex()
	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now
	if rating.HelpfulBy == nil {
		rating.HelpfulBy = []string{}
	}

	_, err := coll.InsertOne(ctx, rating)
	if err != nil {
		return RatingDb{}, err
	}

	return rating, nil
}

func (db *DB) GetRatingById(ctx context.Context, ratingId string) (RatingDb, error) {
	coll := db.Collection(RatingsCollection)

	var rating RatingDb
	err := coll.FindOne(ctx, bson.M{"_id": ratingId}).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return RatingDb{}, ErrRecordNotFound
		}
		return RatingDb{}, err
	}

	return rating, nil
}

func (db *DB) GetRatingByUserIdAndMovieId(ctx context.Context, userId, movieId string) (RatingDb, error) {
	coll := db.Collection(RatingsCollection)

	var rating RatingDb
	err := coll.FindOne(ctx, bson.M{"userId": userId, "movieId": movieId}).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return RatingDb{}, ErrRecordNotFound
		}
		return RatingDb{}, err
	}

	return rating, nil
}

// UpdateRatingContent overwrites only the client-writable fields of an
// existing rating and returns the updated document.
func (db *DB) UpdateRatingContent(ctx context.Context, ratingId string, rating int, review string, isPublic bool) (RatingDb, error) {
	coll := db.Collection(RatingsCollection)

	update := bson.M{
		"$set": bson.M{
			"rating":    rating,
			"review":    review,
			"isPublic":  isPublic,
			"updatedAt": time.Now(),
		},
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": ratingId}, update)
	if err != nil {
		return RatingDb{}, err
	}
	if result.MatchedCount == 0 {
		return RatingDb{}, ErrRecordNotFound
	}

	return db.GetRatingById(ctx, ratingId)
}

func (db *DB) DeleteRatingByUserIdAndMovieId(ctx context.Context, userId, movieId string) (bool, error) {
	coll := db.Collection(RatingsCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"userId": userId, "movieId": movieId})
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}

func (db *DB) DeleteRatingsByMovieId(ctx context.Context, movieId string) (int64, error) {
	coll := db.Collection(RatingsCollection)

	result, err := coll.DeleteMany(ctx, bson.M{"movieId": movieId})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (db *DB) DeleteRatingsByUserId(ctx context.Context, userId string) ([]string, error) {
	coll := db.Collection(RatingsCollection)

	// Collect the affected movie ids first so their aggregates can be
	// recomputed after the delete.
	cursor, err := coll.Find(ctx, bson.M{"userId": userId})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []RatingDb
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}

	movieIds := make([]string, 0, len(ratings))
	for _, rating := range ratings {
		movieIds = append(movieIds, rating.MovieId)
	}

	if _, err := coll.DeleteMany(ctx, bson.M{"userId": userId}); err != nil {
		return nil, err
	}

	return movieIds, nil
}

func (db *DB) GetRatings(ctx context.Context, args ...any) ([]RatingDb, error) {
	coll := db.Collection(RatingsCollection)

	filter, opts := ResolveFilterAndOptionsSearch(args...)
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return []RatingDb{}, err
	}
	defer cursor.Close(ctx)

	var ratings []RatingDb
	if err := cursor.All(ctx, &ratings); err != nil {
		return []RatingDb{}, err
	}

	return ratings, nil
}

func (db *DB) CountRatings(ctx context.Context, filter bson.M) (int64, error) {
	coll := db.Collection(RatingsCollection)
	return coll.CountDocuments(ctx, filter)
}

// GetRatingStats runs a $group over all ratings matching the filter and
// returns the mean rating, the row count and the count of rows with a
// non-empty review.
func (db *DB) GetRatingStats(ctx context.Context, filter bson.M) (RatingStatsDb, error) {
	coll := db.Collection(RatingsCollection)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"averageRating": bson.M{"$avg": "$rating"},
			"totalRatings":  bson.M{"$sum": 1},
			"totalReviews": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gt": bson.A{bson.M{"$strLenCP": bson.M{"$ifNull": bson.A{"$review", ""}}}, 0}}, 1, 0},
			}},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return RatingStatsDb{}, err
	}
	defer cursor.Close(ctx)

	var results []RatingStatsDb
	if err := cursor.All(ctx, &results); err != nil {
		return RatingStatsDb{}, err
	}

	// No matching rows means zeroed stats, not an error.
	if len(results) == 0 {
		return RatingStatsDb{}, nil
	}

	return results[0], nil
}

// AddHelpfulMark appends userId to helpfulBy and increments helpfulVotes in a
// single conditional update, so neither field can move without the other.
// Returns false when the guard filter matched no document (already marked,
// self-vote or missing rating).
func (db *DB) AddHelpfulMark(ctx context.Context, ratingId, userId string) (bool, error) {
	coll := db.Collection(RatingsCollection)

	filter := bson.M{
		"_id":       ratingId,
		"userId":    bson.M{"$ne": userId},
		"helpfulBy": bson.M{"$ne": userId},
	}
	update := bson.M{
		"$addToSet": bson.M{"helpfulBy": userId},
		"$inc":      bson.M{"helpfulVotes": 1},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount > 0, nil
}

// RemoveHelpfulMark is the symmetric inverse of AddHelpfulMark.
func (db *DB) RemoveHelpfulMark(ctx context.Context, ratingId, userId string) (bool, error) {
	coll := db.Collection(RatingsCollection)

	filter := bson.M{
		"_id":       ratingId,
		"helpfulBy": userId,
	}
	update := bson.M{
		"$pull": bson.M{"helpfulBy": userId},
		"$inc":  bson.M{"helpfulVotes": -1},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount > 0, nil
}
