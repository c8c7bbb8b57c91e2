// Package matrix holds the dense, complete sample-by-feature matrix that the
// clustering engine consumes.
//
// A Matrix is immutable once built: constructors copy their input, reject
// ragged rows and non-finite entries, and the accessors hand out read-only
// views. Missing-value filtering and imputation happen upstream; a cell that
// is empty or "NA" is an error here, not a zero.
//
// The delimited text codec reads and writes the conventional layout of
// expression tables: a header row of feature IDs and one labelled row per
// sample.
//
//	m, err := matrix.Read(r, matrix.WithDelimiter(','))
//	for i := range m.Rows() {
//	    fmt.Println(m.RowName(i), m.Row(i))
//	}
package matrix
