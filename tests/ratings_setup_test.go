package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/ratings"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func rateMovie(t *testing.T, movieId string, req ratings.RateMovieRequest, token string) *http.Response {
	t.Helper()
	return doRequest(t, http.MethodPost, "/movies/"+movieId+"/rate", req, token)
}

// mustRate rates a movie and fails the test unless it succeeds.
func mustRate(t *testing.T, movieId string, req ratings.RateMovieRequest, token string) ratings.Rating {
	t.Helper()

	resp := rateMovie(t, movieId, req, token)
	defer resp.Body.Close()
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, resp.StatusCode)

	return decodeBody[ratings.Rating](t, resp)
}

func getRatingDb(t *testing.T, ratingId string) mongodb.RatingDb {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.RatingsCollection)

	var ratingDb mongodb.RatingDb
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": ratingId}).Decode(&ratingDb))
	return ratingDb
}

func countRatingsForPair(t *testing.T, userId, movieId string) int64 {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.RatingsCollection)

	count, err := coll.CountDocuments(ctx, bson.M{"userId": userId, "movieId": movieId})
	require.NoError(t, err)
	return count
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
