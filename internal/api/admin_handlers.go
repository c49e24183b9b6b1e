package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/ratings"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/users"
)

// AdminGetMovies lists the whole catalog, inactive movies included.
func (api *API) AdminGetMovies(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	filter := listMoviesFilterFromQuery(r)
	filter.ActiveOnly = false

	moviesPage, err := movies.ListMovies(api.Db, r.Context(), filter)
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while listing movies")
		return
	}

	respondWithJSON(w, http.StatusOK, moviesPage)
}

func (api *API) AdminCreateMovie(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	currentUser := auth.GetUserFromContext(r.Context())

	var req movies.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	newMovie, err := movies.CreateMovie(api.Db, r.Context(), req, currentUser.Id)
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create movie")
		return
	}

	respondWithJSON(w, http.StatusCreated, newMovie)
}

func (api *API) AdminUpdateMovie(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	var req movies.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	updatedMovie, err := movies.UpdateMovie(api.Db, r.Context(), movieId, req)
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedMovie)
}

func (api *API) AdminDeleteMovie(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	deletedRatings, err := movies.DeleteMovie(api.Db, r.Context(), movieId)
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Movie deleted successfully along with %d ratings", deletedRatings),
	})
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

func (api *API) AdminSetMovieActive(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		respondWithError(w, http.StatusBadRequest, "isActive is required")
		return
	}

	updatedMovie, err := movies.SetActive(api.Db, r.Context(), movieId, *req.IsActive)
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedMovie)
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured"`
}

func (api *API) AdminSetMovieFeatured(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	var req setFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Featured == nil {
		respondWithError(w, http.StatusBadRequest, "featured is required")
		return
	}

	updatedMovie, err := movies.SetFeatured(api.Db, r.Context(), movieId, *req.Featured)
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedMovie)
}

// AdminGetMovieRatings lists all ratings for a movie, private rows included.
func (api *API) AdminGetMovieRatings(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	query := r.URL.Query()
	listOpts := ratings.ListOptions{
		Page:          generics.StringToInt(query.Get("page")),
		PageSize:      generics.StringToInt(query.Get("limit")),
		SortField:     query.Get("sortBy"),
		SortDirection: query.Get("sortOrder"),
		PublicOnly:    false,
	}

	ratingsPage, err := ratings.ListMovieRatings(api.Db, r.Context(), movieId, listOpts)
	if err != nil {
		if respondWithDomainError(w, err, ratings.ErrorMap, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting ratings")
		return
	}

	respondWithJSON(w, http.StatusOK, ratingsPage)
}

func (api *API) AdminGetStats(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	stats, err := movies.GetCatalogStats(api.Db, r.Context())
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (api *API) AdminGetUsers(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	allUsers, err := users.ListUsers(api.Db, r.Context())
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while listing users")
		return
	}

	respondWithJSON(w, http.StatusOK, users.AllUsersResponse{Users: allUsers})
}

type setBannedRequest struct {
	IsBanned *bool `json:"isBanned"`
}

func (api *API) AdminSetUserBanned(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	userId := r.PathValue("id")
	if userId == "" {
		respondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	var req setBannedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsBanned == nil {
		respondWithError(w, http.StatusBadRequest, "isBanned is required")
		return
	}

	updatedUser, err := users.SetBanned(api.Db, r.Context(), userId, *req.IsBanned)
	if err != nil {
		if respondWithDomainError(w, err, users.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedUser)
}

type setAdminRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

func (api *API) AdminSetUserAdmin(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	userId := r.PathValue("id")
	if userId == "" {
		respondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	var req setAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsAdmin == nil {
		respondWithError(w, http.StatusBadRequest, "isAdmin is required")
		return
	}

	updatedUser, err := users.SetAdmin(api.Db, r.Context(), userId, *req.IsAdmin)
	if err != nil {
		if respondWithDomainError(w, err, users.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedUser)
}

func (api *API) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	userId := r.PathValue("id")
	if userId == "" {
		respondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	if err := users.DeleteUser(api.Db, r.Context(), userId); err != nil {
		if respondWithDomainError(w, err, users.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
