package matrix

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/hupe1980/elbow/distance"
	"github.com/hupe1980/elbow/internal/conv"
)

var (
	// ErrNonFiniteInput is returned when an entry is NaN or infinite.
	ErrNonFiniteInput = errors.New("non-finite input")

	// ErrEmpty is returned for a matrix without samples or features.
	ErrEmpty = errors.New("empty matrix")

	// ErrDuplicateName is returned when two rows or two columns share a name.
	ErrDuplicateName = errors.New("duplicate name")
)

// Matrix is a dense n×p matrix of finite float64 values with named rows
// (samples) and named columns (features).
type Matrix struct {
	n, p     int
	data     []float64 // row-major
	rows     [][]float64
	rowNames []string
	colNames []string
	rowIndex map[string]int
}

// New builds a Matrix from row and column names and row-major values.
// If rowNames or colNames is nil, names are generated ("r0", "c0", ...).
func New(rowNames, colNames []string, values [][]float64) (*Matrix, error) {
	p, err := Validate(values)
	if err != nil {
		return nil, err
	}
	n := len(values)
	// Cluster membership is indexed by uint32 row ids.
	if _, err := conv.IntToUint32(n); err != nil {
		return nil, fmt.Errorf("matrix: rows: %w", err)
	}

	if rowNames == nil {
		rowNames = generateNames("r", n)
	}
	if colNames == nil {
		colNames = generateNames("c", p)
	}
	if len(rowNames) != n {
		return nil, &distance.DimensionMismatchError{Expected: n, Actual: len(rowNames), Detail: "row names"}
	}
	if len(colNames) != p {
		return nil, &distance.DimensionMismatchError{Expected: p, Actual: len(colNames), Detail: "column names"}
	}

	m := &Matrix{
		n:        n,
		p:        p,
		data:     make([]float64, n*p),
		rows:     make([][]float64, n),
		rowNames: append([]string(nil), rowNames...),
		colNames: append([]string(nil), colNames...),
		rowIndex: make(map[string]int, n),
	}

	for i, name := range m.rowNames {
		if _, dup := m.rowIndex[name]; dup {
			return nil, fmt.Errorf("%w: row %q", ErrDuplicateName, name)
		}
		m.rowIndex[name] = i
	}
	seen := make(map[string]struct{}, p)
	for _, name := range m.colNames {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: column %q", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}

	for i, row := range values {
		dst := m.data[i*p : (i+1)*p : (i+1)*p]
		copy(dst, row)
		m.rows[i] = dst
	}

	return m, nil
}

// FromRows builds a Matrix with generated row and column names.
func FromRows(values [][]float64) (*Matrix, error) {
	return New(nil, nil, values)
}

// Validate checks that points is non-empty, rectangular and finite, and
// returns the common row length.
func Validate(points [][]float64) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmpty
	}
	p := len(points[0])
	if p == 0 {
		return 0, ErrEmpty
	}
	for i, row := range points {
		if len(row) != p {
			return 0, &distance.DimensionMismatchError{Expected: p, Actual: len(row), Detail: fmt.Sprintf("row %d", i)}
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: row %d column %d is %v", ErrNonFiniteInput, i, j, v)
			}
		}
	}
	return p, nil
}

// Rows returns the number of samples.
func (m *Matrix) Rows() int { return m.n }

// Cols returns the number of features.
func (m *Matrix) Cols() int { return m.p }

// Row returns a read-only view of row i.
func (m *Matrix) Row(i int) []float64 { return m.rows[i] }

// Points returns read-only views of all rows, suitable for the engine.
func (m *Matrix) Points() [][]float64 { return m.rows }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.p+j] }

// RowName returns the sample ID of row i.
func (m *Matrix) RowName(i int) string { return m.rowNames[i] }

// RowNames returns a copy of the sample IDs.
func (m *Matrix) RowNames() []string { return append([]string(nil), m.rowNames...) }

// ColNames returns a copy of the feature IDs.
func (m *Matrix) ColNames() []string { return append([]string(nil), m.colNames...) }

// RowIndex looks up a sample ID.
func (m *Matrix) RowIndex(name string) (int, bool) {
	i, ok := m.rowIndex[name]
	return i, ok
}

func generateNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return names
}
