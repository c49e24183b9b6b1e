package api

import (
	"encoding/json"
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/ratings"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/users"
)

type userProfileResponse struct {
	users.User
	RatingStats ratings.UserRatingStats `json:"ratingStats"`
}

func (api *API) GetMe(w http.ResponseWriter, r *http.Request) {
	currentUser := auth.GetUserFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, users.MapDbUserToApiUser(*currentUser))
}

// GetProfile returns the caller's identity record together with their rating
// activity summary.
func (api *API) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	stats, err := ratings.GetUserRatingStats(api.Db, r.Context(), currentUser.Id)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting profile")
		return
	}

	respondWithJSON(w, http.StatusOK, userProfileResponse{
		User:        users.MapDbUserToApiUser(*currentUser),
		RatingStats: stats,
	})
}

func (api *API) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	var req users.UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	updated, err := users.UpdateMetadata(api.Db, r.Context(), currentUser.Id, req)
	if err != nil {
		if respondWithDomainError(w, err, users.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update metadata")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (api *API) GetOwnRatings(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	query := r.URL.Query()
	listOpts := ratings.ListOptions{
		Page:          generics.StringToInt(query.Get("page")),
		PageSize:      generics.StringToInt(query.Get("limit")),
		SortField:     query.Get("sortBy"),
		SortDirection: query.Get("sortOrder"),
	}

	ratingsPage, err := ratings.ListUserRatings(api.Db, r.Context(), currentUser.Id, listOpts)
	if err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting ratings")
		return
	}

	respondWithJSON(w, http.StatusOK, ratingsPage)
}

func (api *API) GetOwnRatingStats(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	stats, err := ratings.GetUserRatingStats(api.Db, r.Context(), currentUser.Id)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting rating stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetUser returns another user's record; allowed for admins and for the
// owner themselves.
func (api *API) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	userId := r.PathValue("id")
	if userId == "" {
		respondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	if !auth.IsAdmin(r.Context()) && !auth.IsOwner(r.Context(), userId) {
		RespondWithForbidden(w)
		return
	}

	user, err := users.GetUserById(api.Db, r.Context(), userId)
	if err != nil {
		if respondWithDomainError(w, err, users.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting user")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
