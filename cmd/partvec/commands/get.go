package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Look up a record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.load()
			if err != nil {
				return err
			}

			id := args[0]
			partition, rec, ok := c.Get(id)
			if !ok {
				return fmt.Errorf("record %q not found", id)
			}
			return renderRecord(cmd.OutOrStdout(), id, partition, rec, root.json)
		},
	}
}
