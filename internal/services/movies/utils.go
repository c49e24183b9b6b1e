package movies

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrValidation     = errors.New("invalid movie payload")
	ErrDuplicateImdb  = errors.New("a movie with this imdbId already exists")
	ErrUnknownGenre   = errors.New("unknown genre")
	ErrEmptyUpdate    = errors.New("update payload has no fields to apply")
	ErrInvalidSorting = errors.New("invalid sort field")
)

var ErrorMap = map[error]int{
	ErrMovieNotFound:  http.StatusNotFound,
	ErrValidation:     http.StatusBadRequest,
	ErrUnknownGenre:   http.StatusBadRequest,
	ErrEmptyUpdate:    http.StatusBadRequest,
	ErrInvalidSorting: http.StatusBadRequest,
	ErrDuplicateImdb:  http.StatusConflict,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return IsValidGenre(fl.Field().String())
	})
	return v
}

func IsValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// sortFieldsMap maps API sort names to movie document fields.
var sortFieldsMap = map[string]string{
	"title":         "title",
	"releaseDate":   "releaseDate",
	"duration":      "duration",
	"averageRating": "averageRating",
	"totalRatings":  "totalRatings",
	"createdAt":     "createdAt",
}

func resolveSort(field, direction string) (string, int, error) {
	if field == "" {
		field = "createdAt"
	}

	dbField, ok := sortFieldsMap[field]
	if !ok {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidSorting, field)
	}

	order := -1
	if direction == "asc" {
		order = 1
	}

	return dbField, order, nil
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
