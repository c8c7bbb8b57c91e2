package main

import (
	"fmt"

	"github.com/hupe1980/elbow/codec"
	"github.com/hupe1980/elbow/report"
	"github.com/spf13/cobra"
)

func newShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <report>",
		Short: "Print a saved report as indented JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if err := report.Load(cmd.Context(), e.store, args[0], &v,
				report.WithResourceController(e.controller)); err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}

			out, err := codec.GoJSON{}.MarshalIndent(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func newListCmd(e *env) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blobs in the configured storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := e.store.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "match", "reports/", "blob name prefix to list")
	return cmd
}
