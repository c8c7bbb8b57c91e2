package main

import (
	"fmt"

	"github.com/hupe1980/elbow"
	"github.com/hupe1980/elbow/report"
	"github.com/spf13/cobra"
)

func newSweepCmd(e *env) *cobra.Command {
	var (
		input   string
		output  string
		dataset string
		kMax    int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run k-means for k = 1..kmax and print the elbow curve",
		Long: `Runs k-means independently for every k from 1 to --kmax and prints the
"k<TAB>wcss" curve. Values of k that fail (for example k larger than the
number of samples) are logged and left out of the curve.

The full report is saved under --output and the curve is recorded in the
catalog as the next version of --dataset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			m, err := e.loadMatrix(ctx, input)
			if err != nil {
				return err
			}

			sr, err := elbow.RunSweep(ctx, m, kMax, e.options()...)
			if err != nil {
				return err
			}

			if dataset == "" {
				dataset = datasetName(input)
			}
			s := report.FromSweep(dataset, sr)

			if output == "" {
				output = fmt.Sprintf("reports/%s.sweep.elbr%s", dataset, e.compression.Extension())
			}
			if err := e.saveReport(ctx, output, s); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}

			version, err := e.catalog.Record(ctx, s.CatalogEntry(output))
			if err != nil {
				return fmt.Errorf("failed to record sweep: %w", err)
			}

			e.logger.InfoContext(ctx, "sweep recorded",
				"dataset", dataset,
				"version", version,
				"report", output,
				"failed", len(s.Failed),
			)
			return report.WriteCurve(cmd.OutOrStdout(), s.Curve)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "matrix blob name")
	cmd.Flags().StringVar(&output, "output", "", "report blob name (default reports/<dataset>.sweep.elbr)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset name for the catalog (default: input base name)")
	cmd.Flags().IntVar(&kMax, "kmax", 0, "largest k to run")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("kmax")

	return cmd
}
