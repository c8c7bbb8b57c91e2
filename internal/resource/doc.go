// Package resource bounds the work elbow does on behalf of concurrent callers.
//
//   - Runs: a weighted semaphore caps how many k-means runs execute at once
//     across every sweep sharing the Controller.
//   - IO: a token bucket throttles matrix and report blob transfers.
//
//	rc := resource.NewController(resource.Config{
//	    MaxRuns:            4,
//	    IOLimitBytesPerSec: 50 << 20,
//	})
//
//	if err := rc.AcquireRun(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseRun()
//
//	r := resource.NewRateLimitedReader(ctx, blob, rc)
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
