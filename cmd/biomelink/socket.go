package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSocketCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "socket",
		Short: "Start biome in discovery mode and print its socket",
		Long: `Locate biome, run it with __print_socket and print the endpoint it reports.
The server keeps running after this command exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := root.request()
			if err != nil {
				return err
			}
			ctx, cancel := root.connectContext(cmd.Context())
			defer cancel()

			_, endpoint, err := root.service().Discover(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), endpoint)
			return nil
		},
	}
}
