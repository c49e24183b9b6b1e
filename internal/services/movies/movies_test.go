package movies

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundAverage(t *testing.T) {
	require.Equal(t, 8.0, RoundAverage(8.0))
	require.Equal(t, 7.3, RoundAverage(7.333333))
	require.Equal(t, 7.7, RoundAverage(7.666666))
	require.Equal(t, 5.5, RoundAverage(5.45)) // rounds half away from zero
	require.Equal(t, 0.0, RoundAverage(0))
}

func TestIsValidGenre(t *testing.T) {
	require.True(t, IsValidGenre("Drama"))
	require.True(t, IsValidGenre("Sci-Fi"))
	require.False(t, IsValidGenre("drama")) // genre names are case sensitive
	require.False(t, IsValidGenre("Telenovela"))
	require.False(t, IsValidGenre(""))
}

func TestResolveSort(t *testing.T) {
	t.Run("Defaults to createdAt descending", func(t *testing.T) {
		field, order, err := resolveSort("", "")
		require.NoError(t, err)
		require.Equal(t, "createdAt", field)
		require.Equal(t, -1, order)
	})

	t.Run("Ascending direction", func(t *testing.T) {
		field, order, err := resolveSort("title", "asc")
		require.NoError(t, err)
		require.Equal(t, "title", field)
		require.Equal(t, 1, order)
	})

	t.Run("Unknown field is rejected", func(t *testing.T) {
		_, _, err := resolveSort("password", "asc")
		require.ErrorIs(t, err, ErrInvalidSorting)
	})
}

func TestNormalizePaging(t *testing.T) {
	page, size := normalizePaging(0, 0)
	require.Equal(t, 1, page)
	require.Equal(t, 20, size)

	page, size = normalizePaging(3, 50)
	require.Equal(t, 3, page)
	require.Equal(t, 50, size)

	_, size = normalizePaging(1, 1000)
	require.Equal(t, 100, size)
}
