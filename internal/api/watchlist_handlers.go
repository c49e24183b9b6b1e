package api

import (
	"encoding/json"
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/watchlist"
)

func (api *API) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	var req watchlist.AddToWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	entry, err := watchlist.Add(api.Db, r.Context(), currentUser.Id, req.MovieId)
	if err != nil {
		if respondWithDomainError(w, err, watchlist.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to add movie to watchlist")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (api *API) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	entries, err := watchlist.List(api.Db, r.Context(), currentUser.Id)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting watchlist")
		return
	}

	respondWithJSON(w, http.StatusOK, watchlist.WatchlistResponse{Entries: entries})
}

func (api *API) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	movieId := r.PathValue("movieId")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	if err := watchlist.Remove(api.Db, r.Context(), currentUser.Id, movieId); err != nil {
		if respondWithDomainError(w, err, watchlist.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to remove movie from watchlist")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Movie removed from watchlist"})
}

// ClearWatchlist empties the caller's watchlist; clearing an empty watchlist
// succeeds with a zero count.
func (api *API) ClearWatchlist(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	deleted, err := watchlist.Clear(api.Db, r.Context(), currentUser.Id)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to clear watchlist")
		return
	}

	respondWithJSON(w, http.StatusOK, watchlist.ClearWatchlistResponse{Deleted: deleted})
}

func (api *API) CheckWatchlist(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	movieId := r.PathValue("movieId")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	inWatchlist, err := watchlist.Contains(api.Db, r.Context(), currentUser.Id, movieId)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while checking watchlist")
		return
	}

	respondWithJSON(w, http.StatusOK, watchlist.WatchlistCheckResponse{InWatchlist: inWatchlist})
}
