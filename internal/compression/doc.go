// Package compression wraps blob streams in zstd, lz4 or gzip.
//
// Readers detect the codec from the stream's magic bytes, so callers can
// hand any matrix blob to NewReader. Writers pick the codec explicitly or
// from the blob name's extension (".zst", ".lz4", ".gz").
package compression
