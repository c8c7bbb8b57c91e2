package main

import (
	"fmt"

	"github.com/hupe1980/elbow"
	"github.com/hupe1980/elbow/report"
	"github.com/spf13/cobra"
)

func newRunCmd(e *env) *cobra.Command {
	var (
		input  string
		output string
		k      int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster the samples of a matrix into k clusters",
		Long: `Runs k-means once and prints one "sample<TAB>cluster" line per sample.

The full report (centroids, WCSS, termination state, anomalies) is saved to
the configured store under --output.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			m, err := e.loadMatrix(ctx, input)
			if err != nil {
				return err
			}

			res, err := elbow.RunKMeans(ctx, m, k, e.options()...)
			if err != nil {
				return err
			}

			r := report.FromRun(res)
			if output == "" {
				output = fmt.Sprintf("reports/%s.k%d.elbr%s", datasetName(input), k, e.compression.Extension())
			}
			if err := e.saveReport(ctx, output, r); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}

			e.logger.InfoContext(ctx, "report saved", "name", output)
			return report.WriteMembership(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "matrix blob name")
	cmd.Flags().StringVar(&output, "output", "", "report blob name (default reports/<dataset>.k<k>.elbr)")
	cmd.Flags().IntVar(&k, "k", 0, "number of clusters")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("k")

	return cmd
}
