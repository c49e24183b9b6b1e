package ratings

import (
	"time"

	"github.com/its-m4npreet/CriticScore-sub000/internal/generics"
)

type Rating struct {
	Id           string    `json:"id"`
	MovieId      string    `json:"movieId"`
	UserId       string    `json:"userId"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review,omitempty"`
	IsPublic     bool      `json:"isPublic"`
	HelpfulVotes int       `json:"helpfulVotes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RateMovieRequest struct {
	Rating   int     `json:"rating" validate:"required,min=1,max=10"`
	Review   *string `json:"review,omitempty" validate:"omitempty,max=1000"`
	IsPublic *bool   `json:"isPublic,omitempty"`
}

// RatedMovie is the slice of movie fields attached to a user's rating rows.
type RatedMovie struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Poster      *string   `json:"poster,omitempty"`
	ReleaseDate time.Time `json:"releaseDate"`
	Director    string    `json:"director"`
}

type UserRating struct {
	Rating
	Movie *RatedMovie `json:"movie,omitempty"`
}

type ListOptions struct {
	Page          int
	PageSize      int
	SortField     string
	SortDirection string
	PublicOnly    bool
}

type RatingsPage = generics.Page[Rating]

type UserRatingsPage = generics.Page[UserRating]

type UserRatingStats struct {
	TotalRatings  int     `json:"totalRatings"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
