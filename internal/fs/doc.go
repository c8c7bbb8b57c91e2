// Package fs abstracts the file operations behind blobstore.LocalStore writes
// so tests can inject I/O failures.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: wraps a FileSystem and fails writes, syncs, closes or
//     renames for files whose name contains a configured pattern
//
// Usage:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
package fs
