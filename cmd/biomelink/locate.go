package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLocateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the biome binary that would be launched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := root.request()
			if err != nil {
				return err
			}
			path, err := root.service().Locate(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
