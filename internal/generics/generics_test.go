package generics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		size         int
		totalResults int
		totalPages   int
		hasNext      bool
		hasPrev      bool
	}{
		{"first page of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last partial page", 3, 20, 45, 3, false, true},
		{"exact fit", 2, 20, 40, 2, false, true},
		{"single page", 1, 20, 5, 1, false, false},
		{"empty result set", 1, 20, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage([]string{}, tt.page, tt.size, tt.totalResults)

			require.Equal(t, tt.page, p.Page)
			require.Equal(t, tt.size, p.Size)
			require.Equal(t, tt.totalResults, p.TotalResults)
			require.Equal(t, tt.totalPages, p.TotalPages)
			require.Equal(t, tt.hasNext, p.HasNextPage)
			require.Equal(t, tt.hasPrev, p.HasPrevPage)
		})
	}
}

func TestStringToInt(t *testing.T) {
	require.Equal(t, 42, StringToInt("42"))
	require.Equal(t, 0, StringToInt(""))
	require.Equal(t, 0, StringToInt("not a number"))
	require.Equal(t, -7, StringToInt("-7"))
}
