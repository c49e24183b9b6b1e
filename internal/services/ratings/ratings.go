package ratings

import (
	"context"
	"errors"

	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrUpdateRating records a user's rating for a movie. A second rating
// by the same user for the same movie overwrites the first one instead of
// creating a new row. The returned flag is true when an existing rating was
// updated, which drives the 200 vs 201 decision at the API boundary. The
// movie aggregate is recomputed synchronously after the write.
func CreateOrUpdateRating(db *mongodb.DB, ctx context.Context, userId, movieId string, req RateMovieRequest) (Rating, bool, error) {
	if err := validate.Struct(req); err != nil {
		return Rating{}, false, validationError(err)
	}

	if _, err := movies.GetMovie(db, ctx, movieId, false, false); err != nil {
		return Rating{}, false, err
	}

	review := ""
	if req.Review != nil {
		review = *req.Review
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	var savedRating mongodb.RatingDb
	isUpdate := false

	existing, err := db.GetRatingByUserIdAndMovieId(ctx, userId, movieId)
	switch {
	case err == nil:
		savedRating, err = db.UpdateRatingContent(ctx, existing.Id, req.Rating, review, isPublic)
		if err != nil {
			return Rating{}, false, err
		}
		isUpdate = true
	case errors.Is(err, mongodb.ErrRecordNotFound):
		savedRating, err = db.AddRating(ctx, mongodb.RatingDb{
			MovieId:  movieId,
			UserId:   userId,
			Rating:   req.Rating,
			Review:   review,
			IsPublic: isPublic,
		})
		if err != nil {
			if !mongo.IsDuplicateKeyError(err) {
				return Rating{}, false, err
			}
			// Lost the insert race against a concurrent rating by the same
			// user; the unique index collapsed it, so retry as an update.
			existing, err = db.GetRatingByUserIdAndMovieId(ctx, userId, movieId)
			if err != nil {
				return Rating{}, false, err
			}
			savedRating, err = db.UpdateRatingContent(ctx, existing.Id, req.Rating, review, isPublic)
			if err != nil {
				return Rating{}, false, err
			}
			isUpdate = true
		}
	default:
		return Rating{}, false, err
	}

	if err := movies.RecomputeRatingStats(db, ctx, movieId); err != nil {
		return Rating{}, false, err
	}

	return MapDbRatingToApiRating(savedRating), isUpdate, nil
}

// GetUserRating returns the caller's own rating for a movie.
func GetUserRating(db *mongodb.DB, ctx context.Context, userId, movieId string) (Rating, error) {
	ratingDb, err := db.GetRatingByUserIdAndMovieId(ctx, userId, movieId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return Rating{}, ErrRatingNotFound
		}
		return Rating{}, err
	}

	return MapDbRatingToApiRating(ratingDb), nil
}

// ListUserRatings returns one page of a user's ratings, each enriched with
// the referenced movie's title, poster, release date and director.
func ListUserRatings(db *mongodb.DB, ctx context.Context, userId string, listOpts ListOptions) (UserRatingsPage, error) {
	filter := bson.M{"userId": userId}

	sortField, sortOrder, err := resolveSort(listOpts.SortField, listOpts.SortDirection, "createdAt")
	if err != nil {
		return UserRatingsPage{}, err
	}

	page, pageSize := normalizePaging(listOpts.Page, listOpts.PageSize)

	total, err := db.CountRatings(ctx, filter)
	if err != nil {
		return UserRatingsPage{}, err
	}

	opts := options.Find().
		SetSort(sortWithRecencyTiebreak(sortField, sortOrder)).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	ratingsDb, err := db.GetRatings(ctx, filter, opts)
	if err != nil {
		return UserRatingsPage{}, err
	}

	// Fetch the referenced movies in one round trip.
	movieIds := make([]string, 0, len(ratingsDb))
	for _, ratingDb := range ratingsDb {
		movieIds = append(movieIds, ratingDb.MovieId)
	}

	moviesById := map[string]RatedMovie{}
	if len(movieIds) > 0 {
		moviesDb, err := db.GetMovies(ctx, bson.M{"_id": bson.M{"$in": movieIds}})
		if err != nil {
			return UserRatingsPage{}, err
		}
		for _, movieDb := range moviesDb {
			moviesById[movieDb.Id] = MapDbMovieToRatedMovie(movieDb)
		}
	}

	content := make([]UserRating, 0, len(ratingsDb))
	for _, ratingDb := range ratingsDb {
		userRating := UserRating{Rating: MapDbRatingToApiRating(ratingDb)}
		if movie, ok := moviesById[ratingDb.MovieId]; ok {
			userRating.Movie = &movie
		}
		content = append(content, userRating)
	}

	return generics.NewPage(content, page, pageSize, int(total)), nil
}

// ListMovieRatings returns one page of a movie's ratings. The secondary sort
// is always recency descending so ties order deterministically; the default
// primary sort is helpfulVotes descending. PublicOnly restricts to isPublic
// rows (the anonymous endpoint); the admin endpoint passes false.
func ListMovieRatings(db *mongodb.DB, ctx context.Context, movieId string, listOpts ListOptions) (RatingsPage, error) {
	includeInactive := !listOpts.PublicOnly
	if _, err := movies.GetMovie(db, ctx, movieId, false, includeInactive); err != nil {
		return RatingsPage{}, err
	}

	filter := bson.M{"movieId": movieId}
	if listOpts.PublicOnly {
		filter["isPublic"] = true
	}

	sortField, sortOrder, err := resolveSort(listOpts.SortField, listOpts.SortDirection, "helpfulVotes")
	if err != nil {
		return RatingsPage{}, err
	}

	page, pageSize := normalizePaging(listOpts.Page, listOpts.PageSize)

	total, err := db.CountRatings(ctx, filter)
	if err != nil {
		return RatingsPage{}, err
	}

	opts := options.Find().
		SetSort(sortWithRecencyTiebreak(sortField, sortOrder)).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	ratingsDb, err := db.GetRatings(ctx, filter, opts)
	if err != nil {
		return RatingsPage{}, err
	}

	content := make([]Rating, 0, len(ratingsDb))
	for _, ratingDb := range ratingsDb {
		content = append(content, MapDbRatingToApiRating(ratingDb))
	}

	return generics.NewPage(content, page, pageSize, int(total)), nil
}

// DeleteRating removes the caller's rating for a movie and recomputes the
// movie aggregate.
func DeleteRating(db *mongodb.DB, ctx context.Context, userId, movieId string) error {
	deleted, err := db.DeleteRatingByUserIdAndMovieId(ctx, userId, movieId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRatingNotFound
	}

	return movies.RecomputeRatingStats(db, ctx, movieId)
}

// MarkHelpful records that actingUserId found the review helpful. Self-votes
// and double-votes are rejected. The helpfulBy append and the helpfulVotes
// increment land in a single update.
func MarkHelpful(db *mongodb.DB, ctx context.Context, actingUserId, ratingId string) (Rating, error) {
	ratingDb, err := db.GetRatingById(ctx, ratingId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return Rating{}, ErrRatingNotFound
		}
		return Rating{}, err
	}

	if ratingDb.UserId == actingUserId {
		return Rating{}, ErrSelfHelpfulVote
	}
	if contains(ratingDb.HelpfulBy, actingUserId) {
		return Rating{}, ErrAlreadyMarkedHelpful
	}

	marked, err := db.AddHelpfulMark(ctx, ratingId, actingUserId)
	if err != nil {
		return Rating{}, err
	}
	if !marked {
		// A concurrent request won the race; an expected domain error, not a
		// fault.
		return Rating{}, ErrAlreadyMarkedHelpful
	}

	updated, err := db.GetRatingById(ctx, ratingId)
	if err != nil {
		return Rating{}, err
	}

	return MapDbRatingToApiRating(updated), nil
}

// RemoveHelpfulMark is the symmetric inverse of MarkHelpful.
func RemoveHelpfulMark(db *mongodb.DB, ctx context.Context, actingUserId, ratingId string) (Rating, error) {
	ratingDb, err := db.GetRatingById(ctx, ratingId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return Rating{}, ErrRatingNotFound
		}
		return Rating{}, err
	}

	if !contains(ratingDb.HelpfulBy, actingUserId) {
		return Rating{}, ErrHelpfulMarkNotFound
	}

	removed, err := db.RemoveHelpfulMark(ctx, ratingId, actingUserId)
	if err != nil {
		return Rating{}, err
	}
	if !removed {
		return Rating{}, ErrHelpfulMarkNotFound
	}

	updated, err := db.GetRatingById(ctx, ratingId)
	if err != nil {
		return Rating{}, err
	}

	return MapDbRatingToApiRating(updated), nil
}

// GetUserRatingStats summarizes a user's rating activity.
func GetUserRatingStats(db *mongodb.DB, ctx context.Context, userId string) (UserRatingStats, error) {
	stats, err := db.GetRatingStats(ctx, bson.M{"userId": userId})
	if err != nil {
		return UserRatingStats{}, err
	}

	average := 0.0
	if stats.TotalRatings > 0 {
		average = movies.RoundAverage(stats.AverageRating)
	}

	return UserRatingStats{
		TotalRatings:  stats.TotalRatings,
		AverageRating: average,
		TotalReviews:  stats.TotalReviews,
	}, nil
}
