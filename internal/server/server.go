package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/its-m4npreet/CriticScore-sub000/internal/api"
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewServer wires the API over the given client and returns the root handler.
// The unique indexes are created up front because the duplicate-key paths
// depend on them.
func NewServer(client *mongo.Client) http.Handler {
	tokenSecret := os.Getenv("JWT_SECRET")
	if tokenSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(2)
	}

	db := mongodb.NewDB(client)
	if err := mongodb.CreateAllIndexes(context.Background(), db.Database(), false); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	a := api.NewAPI(db, tokenSecret)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.RootHandler)

	mux.HandleFunc("POST /auth/register", a.Register)
	mux.HandleFunc("POST /auth/login", a.Login)

	mux.HandleFunc("GET /movies", OptionalAuth(tokenSecret, db, a.GetMovies))
	mux.HandleFunc("GET /movies/{id}", OptionalAuth(tokenSecret, db, a.GetMovie))
	mux.HandleFunc("GET /movies/{id}/ratings", a.GetMovieRatings)
	mux.HandleFunc("POST /movies/{id}/rate", RequireAuth(tokenSecret, db, a.RateMovie))
	mux.HandleFunc("GET /movies/{id}/rate", RequireAuth(tokenSecret, db, a.GetOwnRating))
	mux.HandleFunc("DELETE /movies/{id}/rate", RequireAuth(tokenSecret, db, a.DeleteOwnRating))
	mux.HandleFunc("POST /movies/ratings/{ratingId}/helpful", RequireAuth(tokenSecret, db, a.MarkRatingHelpful))
	mux.HandleFunc("DELETE /movies/ratings/{ratingId}/helpful", RequireAuth(tokenSecret, db, a.UnmarkRatingHelpful))

	mux.HandleFunc("POST /watchlist/add", RequireAuth(tokenSecret, db, a.AddToWatchlist))
	mux.HandleFunc("GET /watchlist", RequireAuth(tokenSecret, db, a.GetWatchlist))
	mux.HandleFunc("DELETE /watchlist/{movieId}", RequireAuth(tokenSecret, db, a.RemoveFromWatchlist))
	mux.HandleFunc("DELETE /watchlist", RequireAuth(tokenSecret, db, a.ClearWatchlist))
	mux.HandleFunc("GET /watchlist/check/{movieId}", RequireAuth(tokenSecret, db, a.CheckWatchlist))

	mux.HandleFunc("GET /users/me", RequireAuth(tokenSecret, db, a.GetMe))
	mux.HandleFunc("GET /users/profile", RequireAuth(tokenSecret, db, a.GetProfile))
	mux.HandleFunc("PUT /users/metadata", RequireAuth(tokenSecret, db, a.UpdateMetadata))
	mux.HandleFunc("GET /users/me/ratings", RequireAuth(tokenSecret, db, a.GetOwnRatings))
	mux.HandleFunc("GET /users/me/ratings/stats", RequireAuth(tokenSecret, db, a.GetOwnRatingStats))
	mux.HandleFunc("GET /users/{id}", RequireAuth(tokenSecret, db, a.GetUser))

	mux.HandleFunc("GET /admin/movies", RequireAdmin(tokenSecret, db, a.AdminGetMovies))
	mux.HandleFunc("POST /admin/movies", RequireAdmin(tokenSecret, db, a.AdminCreateMovie))
	mux.HandleFunc("PUT /admin/movies/{id}", RequireAdmin(tokenSecret, db, a.AdminUpdateMovie))
	mux.HandleFunc("DELETE /admin/movies/{id}", RequireAdmin(tokenSecret, db, a.AdminDeleteMovie))
	mux.HandleFunc("PUT /admin/movies/{id}/active", RequireAdmin(tokenSecret, db, a.AdminSetMovieActive))
	mux.HandleFunc("PUT /admin/movies/{id}/featured", RequireAdmin(tokenSecret, db, a.AdminSetMovieFeatured))
	mux.HandleFunc("GET /admin/movies/{id}/ratings", RequireAdmin(tokenSecret, db, a.AdminGetMovieRatings))
	mux.HandleFunc("GET /admin/stats", RequireAdmin(tokenSecret, db, a.AdminGetStats))
	mux.HandleFunc("GET /admin/users", RequireAdmin(tokenSecret, db, a.AdminGetUsers))
	mux.HandleFunc("PUT /admin/users/{id}/ban", RequireAdmin(tokenSecret, db, a.AdminSetUserBanned))
	mux.HandleFunc("PUT /admin/users/{id}/admin", RequireAdmin(tokenSecret, db, a.AdminSetUserAdmin))
	mux.HandleFunc("DELETE /admin/users/{id}", RequireAdmin(tokenSecret, db, a.AdminDeleteUser))

	return RequestIdMiddleware(mux)
}

// ListenAndServe starts the HTTP server on PORT (default 8080).
func ListenAndServe(client *mongo.Client) error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: NewServer(client),
	}

	log.Printf("Server is running on port %s", port)
	return server.ListenAndServe()
}
