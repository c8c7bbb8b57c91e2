// Command elbow clusters the samples of a matrix with k-means and writes the
// WCSS-vs-k curve used to choose k.
//
// Usage:
//
//	elbow run   --input expression.tsv.zst --k 4
//	elbow sweep --input expression.tsv.zst --kmax 10 --dataset expression
//
// Configuration is read from flags, ELBOW_* environment variables and an
// optional YAML/TOML config file (--config), in that order of precedence.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
