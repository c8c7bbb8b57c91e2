package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
		{"Fractional", []float64{0, 0.5}, []float64{0, 1}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestChecked(t *testing.T) {
	d, err := Checked([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 25.0, d)

	_, err = Checked([]float64{0, 0, 0}, []float64{3, 4})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	var dm *DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestWithinClusterSS(t *testing.T) {
	points := [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	centroids := [][]float64{{0, 0.5}, {10, 10.5}}

	t.Run("Objective", func(t *testing.T) {
		wcss, err := WithinClusterSS(points, []int{0, 0, 1, 1}, centroids)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, wcss, 1e-12)
	})

	t.Run("Swapped", func(t *testing.T) {
		wcss, err := WithinClusterSS(points, []int{1, 1, 0, 0}, centroids)
		require.NoError(t, err)
		assert.Greater(t, wcss, 300.0)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		_, err := WithinClusterSS(points, []int{0, 0, 1, 2}, centroids)
		assert.ErrorIs(t, err, ErrDimensionMismatch)

		_, err = WithinClusterSS(points, []int{-1, 0, 1, 1}, centroids)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("AssignmentCount", func(t *testing.T) {
		_, err := WithinClusterSS(points, []int{0, 0, 1}, centroids)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("PointLength", func(t *testing.T) {
		_, err := WithinClusterSS([][]float64{{0, 0, 0}}, []int{0}, centroids)
		var dm *DimensionMismatchError
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, "point 0", dm.Detail)
	})

	t.Run("Empty", func(t *testing.T) {
		wcss, err := WithinClusterSS(nil, nil, centroids)
		require.NoError(t, err)
		assert.Zero(t, wcss)
	})
}
