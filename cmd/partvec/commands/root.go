package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/internal/config"
)

type rootOptions struct {
	file    string
	json    bool
	verbose bool
}

// NewRootCmd builds the partvec command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "partvec",
		Short: "Partitioned in-memory vector collection",
		Long: `partvec loads a dataset into an in-memory partitioned vector collection
and runs a single operation against it.

Example dataset (products.yaml):
  name: products
  dimension: 4
  partitions: [fruits, juices, others]
  records:
    - id: p1
      partition: fruits
      vector: [0.9, 0.1, 0.0, 0.0]
      metadata:
        name: Red apple

Examples:
  partvec -f products.yaml summary
  partvec -f products.yaml search -p fruits -q 0.88,0.12,0,0 -k 2
  partvec -f products.yaml get p1 --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "dataset file (YAML)")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output as JSON (for piping)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log collection operations to stderr")

	cmd.AddCommand(newSummaryCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newGetCmd(opts))

	return cmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the dataset named by --file into a new collection.
func (o *rootOptions) load() (*partvec.Collection, error) {
	if o.file == "" {
		return nil, errors.New("dataset file is required, use -f flag")
	}

	d, err := config.Load(o.file)
	if err != nil {
		return nil, err
	}

	var extra []partvec.Option
	if o.verbose {
		extra = append(extra, partvec.WithLogLevel(slog.LevelDebug))
	}
	return d.Build(extra...)
}
