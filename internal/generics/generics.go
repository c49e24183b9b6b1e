package generics

import "strconv"

/*
Page represents a paginated result set with metadata.

Fields:
- Page: Current page number (1-indexed)
- Size: Number of records requested per page
- TotalPages: Total number of pages based on TotalResults and Size
- TotalResults: Total number of records found in the database
- HasNextPage / HasPrevPage: Whether pages exist after / before this one
- Content: Slice containing the actual data records for the current page
*/
type Page[T any] struct {
	Page         int  `json:"page"`
	Size         int  `json:"size"`
	TotalPages   int  `json:"totalPages"`
	TotalResults int  `json:"totalResults"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	Content      []T  `json:"content"`
}

// NewPage fills in the pagination descriptor for a slice of results.
func NewPage[T any](content []T, page, size, totalResults int) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = (totalResults + size - 1) / size
	}

	return Page[T]{
		Page:         page,
		Size:         size,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1 && totalPages > 0,
		Content:      content,
	}
}

func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
