package api

import (
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/ratings"
)

func (api *API) RootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "CriticScore API",
	})
}

func listMoviesFilterFromQuery(r *http.Request) movies.ListMoviesFilter {
	query := r.URL.Query()

	filter := movies.ListMoviesFilter{
		Genre:         query.Get("genre"),
		Search:        query.Get("search"),
		SortField:     query.Get("sortBy"),
		SortDirection: query.Get("sortOrder"),
		Page:          generics.StringToInt(query.Get("page")),
		PageSize:      generics.StringToInt(query.Get("limit")),
	}

	if featured := parseUrlQueryToBool(query.Get("featured")); featured != nil {
		filter.FeaturedOnly = *featured
	}

	return filter
}

// GetMovies is the public catalog listing. Inactive movies are hidden unless
// the caller is an admin.
func (api *API) GetMovies(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	filter := listMoviesFilterFromQuery(r)
	filter.ActiveOnly = !auth.IsAdmin(r.Context())

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

func (api *API) GetMovie(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	movieId := r.PathValue("id")
	if movieId == "" {
		respondWithError(w, http.StatusBadRequest, "Movie id is required")
		return
	}

	movie, err := movies.GetMovie(api.Db, r.Context(), movieId, true, auth.IsAdmin(r.Context()))
	if err != nil {
		if respondWithDomainError(w, err, movies.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database error while getting movie")
		return
	}

	respondWithJSON(w, http.StatusOK, movie)
}

// GetMovieRatings is the public ratings listing; only public rows are shown.
func (api *API) GetMovieRatings(w http.ResponseWriter, r *http.Request) {
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
		PublicOnly:    true,
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
