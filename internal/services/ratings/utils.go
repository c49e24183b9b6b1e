package ratings

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

var validate = validator.New()

var (
	ErrRatingNotFound       = errors.New("rating not found")
	ErrValidation           = errors.New("invalid rating payload")
	ErrSelfHelpfulVote      = errors.New("you cannot mark your own review as helpful")
	ErrAlreadyMarkedHelpful = errors.New("review already marked as helpful")
	ErrHelpfulMarkNotFound  = errors.New("review was not marked as helpful")
	ErrInvalidSorting       = errors.New("invalid sort field")
)

var ErrorMap = map[error]int{
	ErrRatingNotFound:       http.StatusNotFound,
	ErrValidation:           http.StatusBadRequest,
	ErrInvalidSorting:       http.StatusBadRequest,
	ErrSelfHelpfulVote:      http.StatusConflict,
	ErrAlreadyMarkedHelpful: http.StatusConflict,
	ErrHelpfulMarkNotFound:  http.StatusConflict,
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// sortFieldsMap maps API sort names to rating document fields.
var sortFieldsMap = map[string]string{
	"rating":       "rating",
	"helpfulVotes": "helpfulVotes",
	"createdAt":    "createdAt",
	"updatedAt":    "updatedAt",
}

func resolveSort(field, direction, defaultField string) (string, int, error) {
	if field == "" {
		field = defaultField
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

// sortWithRecencyTiebreak builds the sort document for a ratings listing.
// Ties on the primary field order newest first; when the primary field is
// createdAt itself the tiebreak is skipped, since MongoDB rejects sort
// documents with duplicate keys.
func sortWithRecencyTiebreak(sortField string, sortOrder int) bson.D {
	sort := bson.D{{Key: sortField, Value: sortOrder}}
	if sortField != "createdAt" {
		sort = append(sort, bson.E{Key: "createdAt", Value: -1})
	}
	return sort
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

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
