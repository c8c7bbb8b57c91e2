package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned when delimited text cannot be parsed.
var ErrMalformed = errors.New("malformed matrix text")

type textOptions struct {
	delimiter   rune
	comment     rune
	labelHeader string
}

// TextOption configures Read and Write.
type TextOption func(*textOptions)

// WithDelimiter sets the field delimiter (default tab).
func WithDelimiter(r rune) TextOption {
	return func(o *textOptions) { o.delimiter = r }
}

// WithComment sets the comment character; lines starting with it are skipped.
func WithComment(r rune) TextOption {
	return func(o *textOptions) { o.comment = r }
}

// WithLabelHeader sets the header cell written above the sample IDs
// (default "sample").
func WithLabelHeader(s string) TextOption {
	return func(o *textOptions) { o.labelHeader = s }
}

func newTextOptions(optFns []TextOption) textOptions {
	o := textOptions{delimiter: '\t', labelHeader: "sample"}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Read parses a delimited matrix: a header row whose first cell labels the
// sample column followed by feature IDs, then one row per sample.
func Read(r io.Reader, optFns ...TextOption) (*Matrix, error) {
	o := newTextOptions(optFns)

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.Comment = o.comment
	cr.ReuseRecord = false
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has no feature columns", ErrMalformed)
	}
	colNames := header[1:]

	var (
		rowNames []string
		values   [][]float64
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}

		row := make([]float64, len(rec)-1)
		for j, cell := range rec[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, colNames[j], err)
			}
			row[j] = v
		}
		rowNames = append(rowNames, strings.TrimSpace(rec[0]))
		values = append(values, row)
	}

	return New(rowNames, colNames, values)
}

func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToUpper(s) {
	case "", "NA", "N/A", "NULL":
		return 0, fmt.Errorf("%w: missing value %q", ErrNonFiniteInput, cell)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, cell)
	}
	return v, nil
}

// Write renders m in the layout Read accepts.
func Write(w io.Writer, m *Matrix, optFns ...TextOption) error {
	o := newTextOptions(optFns)

	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter

	header := make([]string, 0, m.p+1)
	header = append(header, o.labelHeader)
	header = append(header, m.colNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, m.p+1)
	for i := range m.n {
		rec[0] = m.rowNames[i]
		for j, v := range m.rows[i] {
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
