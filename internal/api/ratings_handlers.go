package api

import (
	"encoding/json"
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/ratings"
)

// RateMovie creates the caller's rating for a movie, or overwrites it when
// one already exists. 201 on create, 200 on update.
func (api *API) RateMovie(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	var req ratings.RateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	savedRating, isUpdate, err := ratings.CreateOrUpdateRating(api.Db, r.Context(), currentUser.Id, movieId, req)
	if err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while saving rating")
		return
	}

	statusCode := http.StatusCreated
	if isUpdate {
		statusCode = http.StatusOK
	}

	respondWithJSON(w, statusCode, savedRating)
}

// GetOwnRating returns the caller's rating for a movie.
func (api *API) GetOwnRating(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	rating, err := ratings.GetUserRating(api.Db, r.Context(), currentUser.Id, movieId)
	if err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting rating")
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}

func (api *API) DeleteOwnRating(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	if err := ratings.DeleteRating(api.Db, r.Context(), currentUser.Id, movieId); err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete rating")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Rating deleted successfully"})
}

func (api *API) MarkRatingHelpful(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	ratingId := r.PathValue("ratingId")
	if ratingId == "" {
		respondWithError(w, http.StatusBadRequest, "Rating id is required")
		return
	}

	updatedRating, err := ratings.MarkHelpful(api.Db, r.Context(), currentUser.Id, ratingId)
	if err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to mark review as helpful")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedRating)
}

func (api *API) UnmarkRatingHelpful(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	ratingId := r.PathValue("ratingId")
	if ratingId == "" {
		respondWithError(w, http.StatusBadRequest, "Rating id is required")
		return
	}

	updatedRating, err := ratings.RemoveHelpfulMark(api.Db, r.Context(), currentUser.Id, ratingId)
	if err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to remove helpful mark")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedRating)
}
