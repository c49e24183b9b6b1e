package movies

import (
	"context"
	"errors"
	"math"

	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxAttachedReviews = 10

// ListMovies returns one page of movies matching the filter plus the
// pagination descriptor. ActiveOnly=true hides soft-deleted movies (the
// public listing); the admin listing passes false to see everything.
func ListMovies(db *mongodb.DB, ctx context.Context, filter ListMoviesFilter) (MoviesPage, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["isActive"] = true
	}
	if filter.FeaturedOnly {
		query["featured"] = true
	}
	if filter.Genre != "" {
		if !IsValidGenre(filter.Genre) {
			return MoviesPage{}, ErrUnknownGenre
		}
		query["genre"] = filter.Genre
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	sortField, sortOrder, err := resolveSort(filter.SortField, filter.SortDirection)
	if err != nil {
		return MoviesPage{}, err
	}

	page, pageSize := normalizePaging(filter.Page, filter.PageSize)

	total, err := db.CountMovies(ctx, query)
	if err != nil {
		return MoviesPage{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortOrder}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	moviesDb, err := db.GetMovies(ctx, query, opts)
	if err != nil {
		return MoviesPage{}, err
	}

	content := make([]Movie, 0, len(moviesDb))
	for _, movieDb := range moviesDb {
		content = append(content, MapDbMovieToApiMovie(movieDb))
	}

	return generics.NewPage(content, page, pageSize, int(total)), nil
}

// GetMovie fetches one movie. Inactive movies are hidden unless
// includeInactive is set (admin callers). When includeReviews is set, up to
// ten public reviews with non-empty text are attached, most helpful first.
func GetMovie(db *mongodb.DB, ctx context.Context, movieId string, includeReviews, includeInactive bool) (MovieDetail, error) {
	movieDb, err := db.GetMovieById(ctx, movieId)
	if err != nil {
		if err == mongodb.ErrRecordNotFound {
			return MovieDetail{}, ErrMovieNotFound
		}
		return MovieDetail{}, err
	}

	if !movieDb.IsActive && !includeInactive {
		return MovieDetail{}, ErrMovieNotFound
	}

	detail := MovieDetail{Movie: MapDbMovieToApiMovie(movieDb)}
	if !includeReviews {
		return detail, nil
	}

	reviewFilter := bson.M{
		"movieId":  movieId,
		"isPublic": true,
		"review":   bson.M{"$gt": ""},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "helpfulVotes", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(maxAttachedReviews)

	reviewsDb, err := db.GetRatings(ctx, reviewFilter, opts)
	if err != nil {
		return MovieDetail{}, err
	}

	for _, ratingDb := range reviewsDb {
		detail.Reviews = append(detail.Reviews, MapDbRatingToMovieReview(ratingDb))
	}

	return detail, nil
}

// CreateMovie validates the payload and stores a new movie with zeroed
// derived fields, owned by creatorId.
func CreateMovie(db *mongodb.DB, ctx context.Context, req CreateMovieRequest, creatorId string) (Movie, error) {
	if err := validate.Struct(req); err != nil {
		return Movie{}, validationError(err)
	}

	movieDb := mongodb.MovieDb{
		Title:       req.Title,
		Description: req.Description,
		Director:    req.Director,
		Cast:        req.Cast,
		Genre:       req.Genre,
		ReleaseDate: req.ReleaseDate,
		Duration:    req.Duration,
		Language:    req.Language,
		Country:     req.Country,
		Poster:      req.Poster,
		Trailer:     req.Trailer,
		ImdbId:      req.ImdbId,
		Budget:      req.Budget,
		BoxOffice:   req.BoxOffice,
		AddedBy:     creatorId,
		IsActive:    true,
	}
	if req.Featured != nil {
		movieDb.Featured = *req.Featured
	}

	newMovie, err := db.AddMovie(ctx, movieDb)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Movie{}, ErrDuplicateImdb
		}
		return Movie{}, err
	}

	return MapDbMovieToApiMovie(newMovie), nil
}

// UpdateMovie applies a partial update. The request type structurally lacks
// the derived fields and addedBy, so they can never be overwritten here.
func UpdateMovie(db *mongodb.DB, ctx context.Context, movieId string, req UpdateMovieRequest) (Movie, error) {
	if err := validate.Struct(req); err != nil {
		return Movie{}, validationError(err)
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Director != nil {
		fields["director"] = *req.Director
	}
	if req.Cast != nil {
		fields["cast"] = req.Cast
	}
	if req.Genre != nil {
		fields["genre"] = req.Genre
	}
	if req.ReleaseDate != nil {
		fields["releaseDate"] = *req.ReleaseDate
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.Poster != nil {
		fields["poster"] = *req.Poster
	}
	if req.Trailer != nil {
		fields["trailer"] = *req.Trailer
	}
	if req.ImdbId != nil {
		fields["imdbId"] = *req.ImdbId
	}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	if req.BoxOffice != nil {
		fields["boxOffice"] = *req.BoxOffice
	}

	if len(fields) == 0 {
		return Movie{}, ErrEmptyUpdate
	}

	updated, err := db.UpdateMovieFields(ctx, movieId, fields)
	if err != nil {
		if err == mongodb.ErrRecordNotFound {
			return Movie{}, ErrMovieNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Movie{}, ErrDuplicateImdb
		}
		return Movie{}, err
	}

	return MapDbMovieToApiMovie(updated), nil
}

// DeleteMovie removes the movie and cascades to its ratings. The two writes
// are not atomic; the ratings delete runs right after the movie delete so no
// rating referencing the movie survives the call.
func DeleteMovie(db *mongodb.DB, ctx context.Context, movieId string) (int64, error) {
	deleted, err := db.DeleteMovieById(ctx, movieId)
	if err != nil {
		return 0, err
	}
	if !deleted {
		return 0, ErrMovieNotFound
	}

	deletedRatings, err := db.DeleteRatingsByMovieId(ctx, movieId)
	if err != nil {
		return 0, err
	}

	return deletedRatings, nil
}

func SetActive(db *mongodb.DB, ctx context.Context, movieId string, active bool) (Movie, error) {
	updated, err := db.UpdateMovieFields(ctx, movieId, bson.M{"isActive": active})
	if err != nil {
		if err == mongodb.ErrRecordNotFound {
			return Movie{}, ErrMovieNotFound
		}
		return Movie{}, err
	}

	return MapDbMovieToApiMovie(updated), nil
}

func SetFeatured(db *mongodb.DB, ctx context.Context, movieId string, featured bool) (Movie, error) {
	updated, err := db.UpdateMovieFields(ctx, movieId, bson.M{"featured": featured})
	if err != nil {
		if err == mongodb.ErrRecordNotFound {
			return Movie{}, ErrMovieNotFound
		}
		return Movie{}, err
	}

	return MapDbMovieToApiMovie(updated), nil
}

// RoundAverage rounds a mean rating to one decimal place, the precision the
// movie aggregate carries.
func RoundAverage(value float64) float64 {
	return math.Round(value*10) / 10
}

// RecomputeRatingStats recomputes averageRating and totalRatings for a movie
// from the ratings collection and writes them onto the movie document. It
// runs synchronously after every rating mutation.
func RecomputeRatingStats(db *mongodb.DB, ctx context.Context, movieId string) error {
	stats, err := db.GetRatingStats(ctx, bson.M{"movieId": movieId})
	if err != nil {
		return err
	}

	average := 0.0
	if stats.TotalRatings > 0 {
		average = RoundAverage(stats.AverageRating)
	}

	err = db.SetMovieRatingStats(ctx, movieId, average, stats.TotalRatings)
	if errors.Is(err, mongodb.ErrRecordNotFound) {
		// The movie was deleted between the rating write and the recompute;
		// the cascade owns the cleanup.
		return nil
	}
	return err
}

// GetCatalogStats returns the admin dashboard counters. The overall average
// is the mean across all rating rows, not a per-movie average of averages.
func GetCatalogStats(db *mongodb.DB, ctx context.Context) (CatalogStats, error) {
	totalMovies, err := db.CountMovies(ctx, bson.M{})
	if err != nil {
		return CatalogStats{}, err
	}

	activeMovies, err := db.CountMovies(ctx, bson.M{"isActive": true})
	if err != nil {
		return CatalogStats{}, err
	}

	featuredMovies, err := db.CountMovies(ctx, bson.M{"featured": true})
	if err != nil {
		return CatalogStats{}, err
	}

	ratingStats, err := db.GetRatingStats(ctx, bson.M{})
	if err != nil {
		return CatalogStats{}, err
	}

	overall := 0.0
	if ratingStats.TotalRatings > 0 {
		overall = RoundAverage(ratingStats.AverageRating)
	}

	return CatalogStats{
		TotalMovies:          totalMovies,
		ActiveMovies:         activeMovies,
		FeaturedMovies:       featuredMovies,
		TotalRatings:         int64(ratingStats.TotalRatings),
		AverageRatingOverall: overall,
	}, nil
}
