package commands

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-partition record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.load()
			if err != nil {
				return err
			}
			return renderSummary(cmd.OutOrStdout(), c.Summarize(), root.json)
		},
	}
}
