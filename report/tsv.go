package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hupe1980/elbow/catalog"
)

// WriteCurve writes the elbow curve as TSV with a "k\twcss" header.
func WriteCurve(w io.Writer, curve []catalog.Point) error {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"k", "wcss"}); err != nil {
		return err
	}
	for _, p := range curve {
		if err := cw.Write([]string{
			strconv.Itoa(p.K),
			strconv.FormatFloat(p.WCSS, 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMembership writes one "sample\tcluster" row per sample in row order.
func WriteMembership(w io.Writer, r *Run) error {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"sample", "cluster"}); err != nil {
		return err
	}
	for i, s := range r.Samples {
		if err := cw.Write([]string{s, strconv.Itoa(r.Membership[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}
