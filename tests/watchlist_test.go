package tests

import (
	"net/http"
	"testing"

	"github.com/its-m4npreet/CriticScore-sub000/internal/services/users"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/watchlist"
	"github.com/stretchr/testify/require"
)

func addToWatchlist(t *testing.T, movieId, token string) *http.Response {
	t.Helper()
	return doRequest(t, http.MethodPost, "/watchlist/add", watchlist.AddToWatchlistRequest{MovieId: movieId}, token)
}

func TestWatchlist(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "watchlist-admin@test.com",
		Name:     "Watchlist Admin",
		Password: "testpass123",
	})
	user, userToken := addUser(t, users.NewUserRequest{
		Email:    "watchlist-user@test.com",
		Name:     "Watchlist User",
		Password: "testpass123",
	})

	first := createMovie(t, sampleMovieRequest("Watchlist Movie One"), adminToken)
	second := createMovie(t, sampleMovieRequest("Watchlist Movie Two"), adminToken)

	t.Run("Adding a movie to the watchlist should return 201", func(t *testing.T) {
		resp := addToWatchlist(t, first.Id, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		entry := decodeBody[watchlist.WatchlistEntry](t, resp)
		require.Equal(t, user.Id, entry.UserId)
		require.Equal(t, first.Id, entry.MovieId)
		require.False(t, entry.AddedAt.IsZero())
	})

	t.Run("Adding the same movie again should return 409", func(t *testing.T) {
		resp := addToWatchlist(t, first.Id, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Adding without a movie id should return 400", func(t *testing.T) {
		resp := addToWatchlist(t, "", userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Checking a movie in the watchlist", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/watchlist/check/"+first.Id, nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		check := decodeBody[watchlist.WatchlistCheckResponse](t, resp)
		require.True(t, check.InWatchlist)
	})

	t.Run("Checking a movie not in the watchlist", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/watchlist/check/"+second.Id, nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		check := decodeBody[watchlist.WatchlistCheckResponse](t, resp)
		require.False(t, check.InWatchlist)
	})

	t.Run("Listing the watchlist shows each movie exactly once", func(t *testing.T) {
		respAdd := addToWatchlist(t, second.Id, userToken)
		respAdd.Body.Close()
		require.Equal(t, http.StatusCreated, respAdd.StatusCode)

		resp := doRequest(t, http.MethodGet, "/watchlist", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := decodeBody[watchlist.WatchlistResponse](t, resp)
		require.Len(t, list.Entries, 2)

		movieIds := []string{list.Entries[0].MovieId, list.Entries[1].MovieId}
		require.ElementsMatch(t, []string{first.Id, second.Id}, movieIds)
	})

	t.Run("Removing a movie from the watchlist", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/watchlist/"+first.Id, nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respList := doRequest(t, http.MethodGet, "/watchlist", nil, userToken)
		defer respList.Body.Close()
		list := decodeBody[watchlist.WatchlistResponse](t, respList)
		require.Len(t, list.Entries, 1)
		require.Equal(t, second.Id, list.Entries[0].MovieId)
	})

	t.Run("Removing a movie that is not in the watchlist should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/watchlist/"+first.Id, nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Clearing the watchlist reports the number of removed entries", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/watchlist", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cleared := decodeBody[watchlist.ClearWatchlistResponse](t, resp)
		require.Equal(t, int64(1), cleared.Deleted)
	})

	t.Run("Clearing an empty watchlist still succeeds", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/watchlist", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cleared := decodeBody[watchlist.ClearWatchlistResponse](t, resp)
		require.Equal(t, int64(0), cleared.Deleted)
	})

	t.Run("Watchlist endpoints require authentication", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/watchlist", nil, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestWatchlistIsolation(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "isolation-admin@test.com",
		Name:     "Isolation Admin",
		Password: "testpass123",
	})
	_, firstToken := addUser(t, users.NewUserRequest{
		Email:    "isolation-a@test.com",
		Name:     "User A",
		Password: "testpass123",
	})
	_, secondToken := addUser(t, users.NewUserRequest{
		Email:    "isolation-b@test.com",
		Name:     "User B",
		Password: "testpass123",
	})

	movie := createMovie(t, sampleMovieRequest("Shared Movie"), adminToken)

	respAdd := addToWatchlist(t, movie.Id, firstToken)
	respAdd.Body.Close()
	require.Equal(t, http.StatusCreated, respAdd.StatusCode)

	// The same movie is addable by another user; watchlists are per user.
	respOther := addToWatchlist(t, movie.Id, secondToken)
	respOther.Body.Close()
	require.Equal(t, http.StatusCreated, respOther.StatusCode)

	resp := doRequest(t, http.MethodGet, "/watchlist", nil, secondToken)
	defer resp.Body.Close()
	list := decodeBody[watchlist.WatchlistResponse](t, resp)
	require.Len(t, list.Entries, 1)
}
