package ratings

import (
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
)

func MapDbRatingToApiRating(rating mongodb.RatingDb) Rating {
	return Rating{
		Id:           rating.Id,
		MovieId:      rating.MovieId,
		UserId:       rating.UserId,
		Rating:       rating.Rating,
		Review:       rating.Review,
		IsPublic:     rating.IsPublic,
		HelpfulVotes: rating.HelpfulVotes,
		CreatedAt:    rating.CreatedAt,
		UpdatedAt:    rating.UpdatedAt,
	}
}

func MapDbMovieToRatedMovie(movie mongodb.MovieDb) RatedMovie {
	return RatedMovie{
		Id:          movie.Id,
		Title:       movie.Title,
		Poster:      movie.Poster,
		ReleaseDate: movie.ReleaseDate,
		Director:    movie.Director,
	}
}
