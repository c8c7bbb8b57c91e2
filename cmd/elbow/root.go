package main

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/elbow"
	"github.com/hupe1980/elbow/blobstore"
	"github.com/hupe1980/elbow/catalog"
	"github.com/hupe1980/elbow/internal/compression"
	"github.com/hupe1980/elbow/matrix"
	"github.com/hupe1980/elbow/report"
	"github.com/spf13/cobra"
)

// env carries everything a subcommand needs once configuration is resolved.
type env struct {
	cfg         *Config
	logger      *elbow.Logger
	store       blobstore.Store
	catalog     catalog.Catalog
	controller  *elbow.ResourceController
	compression compression.Type
	textOptions []matrix.TextOption
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var (
		cfgFile     string
		delimiter   string
		compressStr string
	)

	root := &cobra.Command{
		Use:           "elbow",
		Short:         "k-means clustering and elbow curves for sample matrices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.StringVar(&delimiter, "delimiter", "\t", "input field delimiter")
	pf.StringVar(&compressStr, "compression", "zstd", "report compression: none, gzip, zstd, lz4")
	pf.String("storage", "local", "storage backend: local, s3, minio")
	pf.String("root", ".", "root directory for the local backend")
	pf.String("bucket", "", "bucket for the s3 and minio backends")
	pf.String("prefix", "", "key prefix for the s3 and minio backends")
	pf.String("endpoint", "", "custom endpoint for the s3 and minio backends")
	pf.String("catalog", "memory", "catalog backend: memory, dynamodb")
	pf.String("table", "elbow-catalog", "DynamoDB table for the dynamodb catalog")
	pf.Int("max-iterations", elbow.DefaultMaxIterations, "iteration budget per run")
	pf.Uint64("seed", 0, "random seed (random if unset)")
	pf.Int("workers", 0, "concurrent runs per sweep (0 = GOMAXPROCS)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Int64("io-limit", 0, "blob IO limit in bytes per second (0 = unlimited)")

	for key, flag := range map[string]string{
		"storage.backend":        "storage",
		"storage.root":           "root",
		"storage.bucket":         "bucket",
		"storage.prefix":         "prefix",
		"storage.endpoint":       "endpoint",
		"catalog.backend":        "catalog",
		"catalog.table":          "table",
		"kmeans.max_iterations":  "max-iterations",
		"kmeans.seed":            "seed",
		"kmeans.workers":         "workers",
		"log.level":              "log-level",
		"log.format":             "log-format",
		"io.limit_bytes_per_sec": "io-limit",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	e := &env{}
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		logger, err := cfg.logger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if len([]rune(delimiter)) != 1 {
			return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		ct, err := compression.Parse(compressStr)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := newStore(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		cat, err := newCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}

		*e = env{
			cfg:         cfg,
			logger:      logger,
			store:       store,
			catalog:     cat,
			controller:  cfg.resourceController(),
			compression: ct,
			textOptions: []matrix.TextOption{matrix.WithDelimiter([]rune(delimiter)[0])},
		}
		return nil
	}

	root.AddCommand(newRunCmd(e), newSweepCmd(e), newShowCmd(e), newListCmd(e))
	return root
}

func (e *env) options() []elbow.Option {
	return append(e.cfg.options(e.logger, e.controller), elbow.WithTextOptions(e.textOptions...))
}

func (e *env) loadMatrix(ctx context.Context, name string) (*matrix.Matrix, error) {
	return elbow.LoadMatrix(ctx, e.store, name, e.options()...)
}

func (e *env) saveReport(ctx context.Context, name string, v any) error {
	return report.Save(ctx, e.store, name, v,
		report.WithCompression(e.compression),
		report.WithResourceController(e.controller),
	)
}

// datasetName derives a dataset name from a blob name: "data/expr.tsv.zst" -> "expr".
func datasetName(input string) string {
	base := path.Base(input)
	for {
		ext := path.Ext(base)
		if ext == "" || ext == base {
			return base
		}
		base = strings.TrimSuffix(base, ext)
	}
}
