package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/elbow/blobstore"
)

var (
	// ErrNotFound is returned by Latest when a dataset has no entries.
	ErrNotFound = blobstore.ErrNotFound

	// ErrConcurrentModification is returned when another writer committed the
	// same version first. The caller may retry.
	ErrConcurrentModification = errors.New("catalog: concurrent modification detected")

	// ErrInvalidEntry is returned for entries without a dataset name.
	ErrInvalidEntry = errors.New("catalog: invalid entry")
)

// Point is one (k, WCSS) pair of an elbow curve.
type Point struct {
	K    int     `json:"k"`
	WCSS float64 `json:"wcss"`
}

// Entry is one recorded sweep.
type Entry struct {
	Dataset    string    `json:"dataset"`
	Version    uint64    `json:"version"`
	KMax       int       `json:"k_max"`
	Seed       uint64    `json:"seed"`
	Curve      []Point   `json:"curve"`
	Failed     []int     `json:"failed,omitempty"`
	Report     string    `json:"report,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Catalog stores sweep entries.
type Catalog interface {
	// Record appends e as the next version of e.Dataset and returns that version.
	// Version and RecordedAt (if zero) are assigned by the catalog.
	Record(ctx context.Context, e Entry) (uint64, error)

	// Latest returns the newest entry for dataset.
	Latest(ctx context.Context, dataset string) (Entry, error)
}

func prepare(e Entry, now func() time.Time) (Entry, error) {
	if e.Dataset == "" {
		return Entry{}, ErrInvalidEntry
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = now().UTC()
	}
	e.Curve = append([]Point(nil), e.Curve...)
	e.Failed = append([]int(nil), e.Failed...)
	return e, nil
}
