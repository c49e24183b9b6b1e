package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleMovieRequest(title string) movies.CreateMovieRequest {
	return movies.CreateMovieRequest{
		Title:       title,
		Description: "A movie used by the integration tests",
		Director:    "Test Director",
		Cast:        []string{"Lead Actor", "Supporting Actor"},
		Genre:       []string{"Drama"},
		ReleaseDate: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		Duration:    120,
		Language:    "English",
		Country:     "USA",
	}
}

// createMovie creates a movie through the admin endpoint.
func createMovie(t *testing.T, req movies.CreateMovieRequest, adminToken string) movies.Movie {
	t.Helper()

	resp := doRequest(t, http.MethodPost, "/admin/movies", req, adminToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeBody[movies.Movie](t, resp)
}

// seedMovies inserts movies directly, bypassing the API, for listing tests.
func seedMovies(t *testing.T, count int) []mongodb.MovieDb {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.MoviesCollection)

	now := time.Now()
	docs := make([]interface{}, 0, count)
	seeded := make([]mongodb.MovieDb, 0, count)
	for i := 0; i < count; i++ {
		movieDb := mongodb.MovieDb{
			Id:          primitive.NewObjectID().Hex(),
			Title:       fmt.Sprintf("Seeded Movie %03d", i),
			Description: "Seeded for listing tests",
			Director:    "Seeder",
			Cast:        []string{},
			Genre:       []string{"Drama"},
			ReleaseDate: now.AddDate(-1, 0, -i),
			Duration:    100,
			Language:    "English",
			Country:     "USA",
			AddedBy:     "seed",
			IsActive:    true,
			CreatedAt:   now.Add(-time.Duration(i) * time.Minute),
			UpdatedAt:   now,
		}
		docs = append(docs, movieDb)
		seeded = append(seeded, movieDb)
	}

	_, err := coll.InsertMany(ctx, docs)
	require.NoError(t, err)

	return seeded
}

func getMovieDb(t *testing.T, movieId string) mongodb.MovieDb {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.MoviesCollection)

	var movieDb mongodb.MovieDb
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": movieId}).Decode(&movieDb))
	return movieDb
}

func countRatingsForMovie(t *testing.T, movieId string) int64 {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.RatingsCollection)

	count, err := coll.CountDocuments(ctx, bson.M{"movieId": movieId})
	require.NoError(t, err)
	return count
}
