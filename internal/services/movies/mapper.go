package movies

import (
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
)

func MapDbMovieToApiMovie(movie mongodb.MovieDb) Movie {
	cast := movie.Cast
	if cast == nil {
		cast = []string{}
	}
	genre := movie.Genre
	if genre == nil {
		genre = []string{}
	}

	return Movie{
		Id:            movie.Id,
		Title:         movie.Title,
		Description:   movie.Description,
		Director:      movie.Director,
		Cast:          cast,
		Genre:         genre,
		ReleaseDate:   movie.ReleaseDate,
		Duration:      movie.Duration,
		Language:      movie.Language,
		Country:       movie.Country,
		Poster:        movie.Poster,
		Trailer:       movie.Trailer,
		ImdbId:        movie.ImdbId,
		Budget:        movie.Budget,
		BoxOffice:     movie.BoxOffice,
		AverageRating: movie.AverageRating,
		TotalRatings:  movie.TotalRatings,
		AddedBy:       movie.AddedBy,
		IsActive:      movie.IsActive,
		Featured:      movie.Featured,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}

func MapDbRatingToMovieReview(rating mongodb.RatingDb) MovieReview {
	return MovieReview{
		Id:           rating.Id,
		UserId:       rating.UserId,
		Rating:       rating.Rating,
		Review:       rating.Review,
		HelpfulVotes: rating.HelpfulVotes,
		CreatedAt:    rating.CreatedAt,
	}
}
