package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/ratings"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/users"
	"github.com/stretchr/testify/require"
)

func TestRateMovie(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "rate-admin@test.com",
		Name:     "Rate Admin",
		Password: "testpass123",
	})
	user, userToken := addUser(t, users.NewUserRequest{
		Email:    "rate-user@test.com",
		Name:     "Rate User",
		Password: "testpass123",
	})

	movie := createMovie(t, sampleMovieRequest("Rated Movie"), adminToken)

	t.Run("Rating a movie for the first time should return 201", func(t *testing.T) {
		resp := rateMovie(t, movie.Id, ratings.RateMovieRequest{
			Rating: 8,
			Review: strPtr("Really good"),
		}, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		rating := decodeBody[ratings.Rating](t, resp)
		require.Equal(t, 8, rating.Rating)
		require.Equal(t, "Really good", rating.Review)
		require.True(t, rating.IsPublic)
		require.Equal(t, 0, rating.HelpfulVotes)
	})

	t.Run("Rating the same movie again should update in place and return 200", func(t *testing.T) {
		resp := rateMovie(t, movie.Id, ratings.RateMovieRequest{
			Rating:   4,
			Review:   strPtr("Changed my mind"),
			IsPublic: boolPtr(false),
		}, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		rating := decodeBody[ratings.Rating](t, resp)
		require.Equal(t, 4, rating.Rating)
		require.Equal(t, "Changed my mind", rating.Review)
		require.False(t, rating.IsPublic)

		// Still exactly one row for the pair, holding the latest payload.
		require.Equal(t, int64(1), countRatingsForPair(t, user.Id, movie.Id))
		ratingDb := getRatingDb(t, rating.Id)
		require.Equal(t, 4, ratingDb.Rating)
	})

	t.Run("Rating below the valid range should return 400", func(t *testing.T) {
		resp := rateMovie(t, movie.Id, ratings.RateMovieRequest{Rating: 0}, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rating above the valid range should return 400", func(t *testing.T) {
		resp := rateMovie(t, movie.Id, ratings.RateMovieRequest{Rating: 11}, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rating a missing movie should return 404", func(t *testing.T) {
		resp := rateMovie(t, "missing-movie", ratings.RateMovieRequest{Rating: 5}, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Rating without a token should return 401", func(t *testing.T) {
		resp := rateMovie(t, movie.Id, ratings.RateMovieRequest{Rating: 5}, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRatingAggregation(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "agg-admin@test.com",
		Name:     "Agg Admin",
		Password: "testpass123",
	})
	movie := createMovie(t, sampleMovieRequest("Aggregated Movie"), adminToken)

	tokens := make([]string, 0, 3)
	for _, email := range []string{"agg-a@test.com", "agg-b@test.com", "agg-c@test.com"} {
		_, token := addUser(t, users.NewUserRequest{
			Email:    email,
			Name:     "Agg Rater",
			Password: "testpass123",
		})
		tokens = append(tokens, token)
	}

	mustRate(t, movie.Id, ratings.RateMovieRequest{Rating: 8}, tokens[0])
	mustRate(t, movie.Id, ratings.RateMovieRequest{Rating: 6}, tokens[1])
	mustRate(t, movie.Id, ratings.RateMovieRequest{Rating: 10}, tokens[2])

	t.Run("Average and count reflect all ratings", func(t *testing.T) {
		movieDb := getMovieDb(t, movie.Id)
		require.Equal(t, 8.0, movieDb.AverageRating)
		require.Equal(t, 3, movieDb.TotalRatings)
	})

	t.Run("Deleting a rating recomputes the aggregate", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/movies/"+movie.Id+"/rate", nil, tokens[1])
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		movieDb := getMovieDb(t, movie.Id)
		require.Equal(t, 9.0, movieDb.AverageRating)
		require.Equal(t, 2, movieDb.TotalRatings)
	})

	t.Run("Updating a rating recomputes the aggregate", func(t *testing.T) {
		mustRate(t, movie.Id, ratings.RateMovieRequest{Rating: 1}, tokens[0])

		movieDb := getMovieDb(t, movie.Id)
		require.Equal(t, 5.5, movieDb.AverageRating)
		require.Equal(t, 2, movieDb.TotalRatings)
	})

	t.Run("Deleting the last ratings resets the aggregate to zero", func(t *testing.T) {
		for _, token := range []string{tokens[0], tokens[2]} {
			resp := doRequest(t, http.MethodDelete, "/movies/"+movie.Id+"/rate", nil, token)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}

		movieDb := getMovieDb(t, movie.Id)
		require.Equal(t, 0.0, movieDb.AverageRating)
		require.Equal(t, 0, movieDb.TotalRatings)
	})

	t.Run("Deleting a missing rating should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/movies/"+movie.Id+"/rate", nil, tokens[0])
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetOwnRating(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "own-admin@test.com",
		Name:     "Own Admin",
		Password: "testpass123",
	})
	_, userToken := addUser(t, users.NewUserRequest{
		Email:    "own-user@test.com",
		Name:     "Own User",
		Password: "testpass123",
	})

	movie := createMovie(t, sampleMovieRequest("Own Rating Movie"), adminToken)

	t.Run("Getting an own rating before rating should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/movies/"+movie.Id+"/rate", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Getting an own rating after rating", func(t *testing.T) {
		created := mustRate(t, movie.Id, ratings.RateMovieRequest{Rating: 7}, userToken)

		resp := doRequest(t, http.MethodGet, "/movies/"+movie.Id+"/rate", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		rating := decodeBody[ratings.Rating](t, resp)
		require.Equal(t, created.Id, rating.Id)
		require.Equal(t, 7, rating.Rating)
	})
}

func TestHelpfulMarks(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "helpful-admin@test.com",
		Name:     "Helpful Admin",
		Password: "testpass123",
	})
	_, authorToken := addUser(t, users.NewUserRequest{
		Email:    "helpful-author@test.com",
		Name:     "Review Author",
		Password: "testpass123",
	})
	_, voterToken := addUser(t, users.NewUserRequest{
		Email:    "helpful-voter@test.com",
		Name:     "Review Voter",
		Password: "testpass123",
	})

	movie := createMovie(t, sampleMovieRequest("Helpful Movie"), adminToken)
	rating := mustRate(t, movie.Id, ratings.RateMovieRequest{
		Rating: 9,
		Review: strPtr("Worth watching twice"),
	}, authorToken)

	markPath := "/movies/ratings/" + rating.Id + "/helpful"

	t.Run("Marking an own rating helpful should return 409", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, markPath, nil, authorToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Marking another user's rating helpful increments the count", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, markPath, nil, voterToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		marked := decodeBody[ratings.Rating](t, resp)
		require.Equal(t, 1, marked.HelpfulVotes)
	})

	t.Run("Marking the same rating twice should return 409 and not double count", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, markPath, nil, voterToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		require.Equal(t, 1, getRatingDb(t, rating.Id).HelpfulVotes)
	})

	t.Run("Removing a helpful mark decrements the count", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, markPath, nil, voterToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		unmarked := decodeBody[ratings.Rating](t, resp)
		require.Equal(t, 0, unmarked.HelpfulVotes)
	})

	t.Run("Removing a mark that does not exist should return 409", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, markPath, nil, voterToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Re-marking after removal is allowed", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, markPath, nil, voterToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Equal(t, 1, getRatingDb(t, rating.Id).HelpfulVotes)
	})

	t.Run("Marking a missing rating should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/movies/ratings/missing-rating/helpful", nil, voterToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListMovieRatings(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "list-admin@test.com",
		Name:     "List Admin",
		Password: "testpass123",
	})
	movie := createMovie(t, sampleMovieRequest("Listed Movie"), adminToken)

	_, publicToken := addUser(t, users.NewUserRequest{
		Email:    "list-public@test.com",
		Name:     "Public Rater",
		Password: "testpass123",
	})
	_, privateToken := addUser(t, users.NewUserRequest{
		Email:    "list-private@test.com",
		Name:     "Private Rater",
		Password: "testpass123",
	})

	publicRating := mustRate(t, movie.Id, ratings.RateMovieRequest{
		Rating: 8,
		Review: strPtr("Public opinion"),
	}, publicToken)
	mustRate(t, movie.Id, ratings.RateMovieRequest{
		Rating:   3,
		Review:   strPtr("Private opinion"),
		IsPublic: boolPtr(false),
	}, privateToken)

	t.Run("Public listing only shows public ratings", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/movies/"+movie.Id+"/ratings", nil, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodeBody[ratings.RatingsPage](t, resp)
		require.Len(t, page.Content, 1)
		require.Equal(t, publicRating.Id, page.Content[0].Id)
	})

	t.Run("Admin listing shows private ratings too", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/admin/movies/"+movie.Id+"/ratings", nil, adminToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodeBody[ratings.RatingsPage](t, resp)
		require.Len(t, page.Content, 2)
	})

	t.Run("The aggregate still counts private ratings", func(t *testing.T) {
		movieDb := getMovieDb(t, movie.Id)
		require.Equal(t, 5.5, movieDb.AverageRating)
		require.Equal(t, 2, movieDb.TotalRatings)
	})
}

func TestRatingListOrdering(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "order-admin@test.com",
		Name:     "Order Admin",
		Password: "testpass123",
	})
	_, userToken := addUser(t, users.NewUserRequest{
		Email:    "order-user@test.com",
		Name:     "Order User",
		Password: "testpass123",
	})

	first := createMovie(t, sampleMovieRequest("Rated First"), adminToken)
	second := createMovie(t, sampleMovieRequest("Rated Second"), adminToken)

	mustRate(t, first.Id, ratings.RateMovieRequest{Rating: 6}, userToken)
	time.Sleep(10 * time.Millisecond) // distinct createdAt timestamps
	mustRate(t, second.Id, ratings.RateMovieRequest{Rating: 9}, userToken)

	t.Run("Own ratings default to recency order", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/users/me/ratings", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodeBody[ratings.UserRatingsPage](t, resp)
		require.Len(t, page.Content, 2)
		require.Equal(t, second.Id, page.Content[0].MovieId)
		require.Equal(t, first.Id, page.Content[1].MovieId)
	})

	t.Run("Sorting movie ratings by createdAt explicitly", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/movies/"+first.Id+"/ratings?sortBy=createdAt&sortOrder=asc", nil, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodeBody[ratings.RatingsPage](t, resp)
		require.Len(t, page.Content, 1)
	})

	t.Run("An unknown sort field should return 400", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/users/me/ratings?sortBy=password", nil, userToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestMovieDetailReviews(t *testing.T) {
	resetDB(t)

	_, adminToken := addAdmin(t, users.NewUserRequest{
		Email:    "detail-admin@test.com",
		Name:     "Detail Admin",
		Password: "testpass123",
	})
	movie := createMovie(t, sampleMovieRequest("Detailed Movie"), adminToken)

	_, reviewerToken := addUser(t, users.NewUserRequest{
		Email:    "detail-reviewer@test.com",
		Name:     "Reviewer",
		Password: "testpass123",
	})
	_, silentToken := addUser(t, users.NewUserRequest{
		Email:    "detail-silent@test.com",
		Name:     "Silent Rater",
		Password: "testpass123",
	})

	mustRate(t, movie.Id, ratings.RateMovieRequest{
		Rating: 9,
		Review: strPtr("An instant classic"),
	}, reviewerToken)
	mustRate(t, movie.Id, ratings.RateMovieRequest{Rating: 6}, silentToken)

	resp := doRequest(t, http.MethodGet, "/movies/"+movie.Id, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	detail := decodeBody[movies.MovieDetail](t, resp)
	require.Equal(t, movie.Id, detail.Id)
	require.Equal(t, 7.5, detail.AverageRating)

	// Only ratings with review text show up in the detail reviews.
	require.Len(t, detail.Reviews, 1)
	require.Equal(t, "An instant classic", detail.Reviews[0].Review)
}
