package movies

import (
	"time"

	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
)

// Genres is the fixed enumeration of valid genre names.
var Genres = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy",
	"Crime", "Documentary", "Drama", "Family", "Fantasy",
	"History", "Horror", "Music", "Mystery", "Romance",
	"Sci-Fi", "Sport", "Thriller", "War", "Western",
}

type Movie struct {
	Id            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Director      string    `json:"director"`
	Cast          []string  `json:"cast"`
	Genre         []string  `json:"genre"`
	ReleaseDate   time.Time `json:"releaseDate"`
	Duration      int       `json:"duration"`
	Language      string    `json:"language"`
	Country       string    `json:"country"`
	Poster        *string   `json:"poster,omitempty"`
	Trailer       *string   `json:"trailer,omitempty"`
	ImdbId        *string   `json:"imdbId,omitempty"`
	Budget        *float64  `json:"budget,omitempty"`
	BoxOffice     *float64  `json:"boxOffice,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	AddedBy       string    `json:"addedBy"`
	IsActive      bool      `json:"isActive"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MovieReview is a public review attached to a movie detail response.
type MovieReview struct {
	Id           string    `json:"id"`
	UserId       string    `json:"userId"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review"`
	HelpfulVotes int       `json:"helpfulVotes"`
	CreatedAt    time.Time `json:"createdAt"`
}

type MovieDetail struct {
	Movie
	Reviews []MovieReview `json:"reviews,omitempty"`
}

// CreateMovieRequest structurally lacks averageRating, totalRatings and
// addedBy: derived fields are never client-writable.
type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=2000"`
	Director    string    `json:"director" validate:"required,max=100"`
	Cast        []string  `json:"cast" validate:"omitempty,dive,max=100"`
	Genre       []string  `json:"genre" validate:"omitempty,dive,genre"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
	Duration    int       `json:"duration" validate:"required,min=1"`
	Language    string    `json:"language" validate:"required"`
	Country     string    `json:"country" validate:"required"`
	Poster      *string   `json:"poster,omitempty" validate:"omitempty,url"`
	Trailer     *string   `json:"trailer,omitempty" validate:"omitempty,url"`
	ImdbId      *string   `json:"imdbId,omitempty"`
	Budget      *float64  `json:"budget,omitempty" validate:"omitempty,min=0"`
	BoxOffice   *float64  `json:"boxOffice,omitempty" validate:"omitempty,min=0"`
	Featured    *bool     `json:"featured,omitempty"`
}

// UpdateMovieRequest is a partial update; absent fields are left untouched.
type UpdateMovieRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Director    *string    `json:"director,omitempty" validate:"omitempty,max=100"`
	Cast        []string   `json:"cast,omitempty" validate:"omitempty,dive,max=100"`
	Genre       []string   `json:"genre,omitempty" validate:"omitempty,dive,genre"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Duration    *int       `json:"duration,omitempty" validate:"omitempty,min=1"`
	Language    *string    `json:"language,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Poster      *string    `json:"poster,omitempty" validate:"omitempty,url"`
	Trailer     *string    `json:"trailer,omitempty" validate:"omitempty,url"`
	ImdbId      *string    `json:"imdbId,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	BoxOffice   *float64   `json:"boxOffice,omitempty" validate:"omitempty,min=0"`
}

type ListMoviesFilter struct {
	Genre         string
	Search        string
	ActiveOnly    bool
	FeaturedOnly  bool
	SortField     string
	SortDirection string
	Page          int
	PageSize      int
}

type MoviesPage = generics.Page[Movie]

type CatalogStats struct {
	TotalMovies          int64   `json:"totalMovies"`
	ActiveMovies         int64   `json:"activeMovies"`
	FeaturedMovies       int64   `json:"featuredMovies"`
	TotalRatings         int64   `json:"totalRatings"`
	AverageRatingOverall float64 `json:"averageRatingOverall"`
}
