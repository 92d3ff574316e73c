package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/metadata"
)

type searchOptions struct {
	partition string
	query     string
	k         int
	where     []string
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the nearest records to a query vector",
		Long: `Find the nearest records to a query vector.

Without --partition every partition is searched and the hits are merged.
--where restricts the search to records whose metadata field equals the
given value and may be repeated.

Examples:
  partvec -f products.yaml search -p fruits -q 0.88,0.12,0,0 -k 2
  partvec -f products.yaml search -q 0.2,0.8,0.1,0 --where category=fruit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := parseVector(opts.query)
			if err != nil {
				return err
			}
			filters, err := parseFilters(opts.where)
			if err != nil {
				return err
			}

			c, err := root.load()
			if err != nil {
				return err
			}

			sb := c.Query(query).KNN(opts.k).Where(filters...)

			var results []partvec.Result
			if opts.partition != "" {
				results, err = sb.In(opts.partition).Execute()
			} else {
				results, err = sb.Across(cmd.Context())
			}
			if err != nil {
				return err
			}

			return renderResults(cmd.OutOrStdout(), results, root.json)
		},
	}

	cmd.Flags().StringVarP(&opts.partition, "partition", "p", "", "partition to search (default: all)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "comma-separated query vector")
	cmd.Flags().IntVarP(&opts.k, "k", "k", partvec.DefaultK, "number of neighbors")
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "metadata equality filter key=value")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func parseVector(s string) ([]float32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("query vector is empty")
	}
	parts := strings.Split(s, ",")
	vec := make([]float32, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("query component %d: %w", i, err)
		}
		vec[i] = float32(x)
	}
	return vec, nil
}

func parseFilters(exprs []string) ([]metadata.Filter, error) {
	filters := make([]metadata.Filter, 0, len(exprs))
	for _, e := range exprs {
		key, value, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", e)
		}
		filters = append(filters, metadata.Eq(key, parseScalar(value)))
	}
	return filters, nil
}

// parseScalar guesses the type of a flag value: int, float, bool, else
// string.
func parseScalar(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
