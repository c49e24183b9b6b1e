package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ----- Types for the database -----

type MovieDb struct {
	Id            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Director      string    `json:"director" bson:"director"`
	Cast          []string  `json:"cast" bson:"cast"`
	Genre         []string  `json:"genre" bson:"genre"`
	ReleaseDate   time.Time `json:"releaseDate" bson:"releaseDate"`
	Duration      int       `json:"duration" bson:"duration"`
	Language      string    `json:"language" bson:"language"`
	Country       string    `json:"country" bson:"country"`
	Poster        *string   `json:"poster,omitempty" bson:"poster,omitempty"`
	Trailer       *string   `json:"trailer,omitempty" bson:"trailer,omitempty"`
	ImdbId        *string   `json:"imdbId,omitempty" bson:"imdbId,omitempty"`
	Budget        *float64  `json:"budget,omitempty" bson:"budget,omitempty"`
	BoxOffice     *float64  `json:"boxOffice,omitempty" bson:"boxOffice,omitempty"`
	AverageRating float64   `json:"averageRating" bson:"averageRating"`
	TotalRatings  int       `json:"totalRatings" bson:"totalRatings"`
	AddedBy       string    `json:"addedBy" bson:"addedBy"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	Featured      bool      `json:"featured" bson:"featured"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ----- Methods for the database -----

func (db *DB) AddMovie(ctx context.Context, movie MovieDb) (MovieDb, error) {
	coll := db.Collection(MoviesCollection)

	movie.Id = primitive.NewObjectID().Hex()
	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	_, err := coll.InsertOne(ctx, movie)
	if err != nil {
		return MovieDb{}, err
	}

	return movie, nil
}

func (db *DB) GetMovieById(ctx context.Context, movieId string) (MovieDb, error) {
	coll := db.Collection(MoviesCollection)

	var movie MovieDb
	err := coll.FindOne(ctx, bson.M{"_id": movieId}).Decode(&movie)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return MovieDb{}, ErrRecordNotFound
		}
		return MovieDb{}, err
	}

	return movie, nil
}

// UpdateMovieFields applies a partial $set on a movie and returns the updated
// document.
func (db *DB) UpdateMovieFields(ctx context.Context, movieId string, fields bson.M) (MovieDb, error) {
	coll := db.Collection(MoviesCollection)

	fields["updatedAt"] = time.Now()
	update := bson.M{"$set": fields}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": movieId}, update)
	if err != nil {
		return MovieDb{}, err
	}
	if result.MatchedCount == 0 {
		return MovieDb{}, ErrRecordNotFound
	}

	return db.GetMovieById(ctx, movieId)
}

func (db *DB) DeleteMovieById(ctx context.Context, movieId string) (bool, error) {
	coll := db.Collection(MoviesCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"_id": movieId})
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}

func (db *DB) GetMovies(ctx context.Context, args ...any) ([]MovieDb, error) {
	coll := db.Collection(MoviesCollection)

	filter, opts := ResolveFilterAndOptionsSearch(args...)
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return []MovieDb{}, err
	}
	defer cursor.Close(ctx)

	var movies []MovieDb
	if err := cursor.All(ctx, &movies); err != nil {
		return []MovieDb{}, err
	}

	return movies, nil
}

func (db *DB) CountMovies(ctx context.Context, filter bson.M) (int64, error) {
	coll := db.Collection(MoviesCollection)
	return coll.CountDocuments(ctx, filter)
}

// SetMovieRatingStats writes the derived rating aggregate onto a movie. It is
// the only writer of averageRating and totalRatings.
func (db *DB) SetMovieRatingStats(ctx context.Context, movieId string, averageRating float64, totalRatings int) error {
	coll := db.Collection(MoviesCollection)

	update := bson.M{
		"$set": bson.M{
			"averageRating": averageRating,
			"totalRatings":  totalRatings,
			"updatedAt":     time.Now(),
		},
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": movieId}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}
