// Package report turns run and sweep results into serialisable documents,
// persists them in a blobstore and renders the TSV tables read by the
// downstream elbow decision and enrichment steps.
//
// Saved reports are self-describing: a short header names the codec, and the
// body may be compressed with any algorithm internal/compression detects.
package report
