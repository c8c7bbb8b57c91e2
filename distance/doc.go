// Package distance provides the squared Euclidean metric and the
// within-cluster sum of squares (WCSS) objective used by the k-means engine.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)           // unchecked, hot path
//	d, err := distance.Checked(a, b)        // length-checked
//	wcss, err := distance.WithinClusterSS(points, assignments, centroids)
package distance
