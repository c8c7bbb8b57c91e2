// Package catalog keeps a versioned history of elbow curves per dataset.
//
// Each Record appends a new version; Latest returns the newest one. The curve
// is what an external decision step reads to pick k, and Report points at the
// full sweep report in a blobstore.
//
// Two backends are provided:
//
//   - MemoryCatalog: in-process, for tests and single-shot CLI runs
//   - DynamoDB: versions are written with a conditional put, so concurrent
//     writers never overwrite each other
package catalog
