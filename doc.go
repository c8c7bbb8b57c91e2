// Package elbow clusters the samples of a numeric matrix with Lloyd's k-means
// and produces the within-cluster sum of squares (WCSS) curve used by the
// elbow method to choose k.
//
// # Quick Start
//
//	m, _ := matrix.Read(f)                      // rows = samples, cols = features
//	res, _ := elbow.RunKMeans(ctx, m, 3, elbow.WithSeed(42))
//	fmt.Println(res.WCSS, res.Membership())
//
//	sweep, _ := elbow.RunSweep(ctx, m, 10, elbow.WithSeed(42))
//	for _, p := range sweep.Curve() {
//	    fmt.Println(p.K, p.WCSS)
//	}
//
// # Reproducibility
//
// With WithSeed every run is deterministic, and the sweep entry for k equals
// a stand-alone RunKMeans with the same seed and k. Without a seed one is
// drawn at random and reported in the result so the run can be repeated.
//
// # Termination
//
// A run stops when no point changes cluster (Converged), when the iteration
// budget is spent (MaxIterReached), or when the context is done (Cancelled).
// The last two are not errors; the partial result is returned and
// Converged() reports false.
//
// # Empty Clusters
//
// A cluster that loses all its points is reseeded from a point that does not
// coincide with another centroid. Each recovery is recorded in
// RunResult.Anomalies, logged at WARN and counted by the MetricsCollector.
//
// # Storage
//
// LoadMatrix reads delimited text (optionally gzip, zstd or lz4 compressed)
// from any blobstore.Store: local files, memory, S3 or MinIO.
package elbow
