package watchlist

import (
	"context"
	"errors"
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAlreadyInWatchlist = errors.New("movie is already in the watchlist")
	ErrEntryNotFound      = errors.New("movie is not in the watchlist")
	ErrMissingMovieId     = errors.New("movieId is required")
)

var ErrorMap = map[error]int{
	ErrAlreadyInWatchlist: http.StatusConflict,
	ErrEntryNotFound:      http.StatusNotFound,
	ErrMissingMovieId:     http.StatusBadRequest,
}

// Add bookmarks a movie for the user. A duplicate add is a conflict, not an
// upsert; the unique (userId, movieId) index enforces it under concurrency.
// The movieId is stored as an opaque string.
func Add(db *mongodb.DB, ctx context.Context, userId, movieId string) (WatchlistEntry, error) {
	if movieId == "" {
		return WatchlistEntry{}, ErrMissingMovieId
	}

	entryDb, err := db.AddWatchlistEntry(ctx, userId, movieId)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return WatchlistEntry{}, ErrAlreadyInWatchlist
		}
		return WatchlistEntry{}, err
	}

	return mapDbEntry(entryDb), nil
}

func Remove(db *mongodb.DB, ctx context.Context, userId, movieId string) error {
	deleted, err := db.DeleteWatchlistEntry(ctx, userId, movieId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}

	return nil
}

func List(db *mongodb.DB, ctx context.Context, userId string) ([]WatchlistEntry, error) {
	entriesDb, err := db.GetWatchlistByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	entries := make([]WatchlistEntry, 0, len(entriesDb))
	for _, entryDb := range entriesDb {
		entries = append(entries, mapDbEntry(entryDb))
	}

	return entries, nil
}

// Clear empties the user's watchlist and returns how many entries were
// removed. Clearing an already empty watchlist succeeds with zero.
func Clear(db *mongodb.DB, ctx context.Context, userId string) (int64, error) {
	return db.ClearWatchlistByUserId(ctx, userId)
}

func Contains(db *mongodb.DB, ctx context.Context, userId, movieId string) (bool, error) {
	return db.WatchlistContains(ctx, userId, movieId)
}

func mapDbEntry(entryDb mongodb.WatchlistEntryDb) WatchlistEntry {
	return WatchlistEntry{
		Id:      entryDb.Id,
		UserId:  entryDb.UserId,
		MovieId: entryDb.MovieId,
		AddedAt: entryDb.AddedAt,
	}
}
