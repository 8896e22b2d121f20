package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"biomelink/internal/adapter/relay"
	"biomelink/internal/app"
	"biomelink/internal/domain"
)

func newProxyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "proxy",
		Short: "Connect to the Biome server and relay it over stdin/stdout",
		Long: `Locate biome for this project, start it in socket-discovery mode, connect
to the reported socket and relay the language server protocol over stdio.

When the integration is disabled, or requireConfiguration is set and no
biome.json exists under the root, proxy logs the reason and exits 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := root.request()
			if err != nil {
				return err
			}

			ctx, cancel := root.connectContext(cmd.Context())
			transport, err := root.service().Activate(ctx, app.Activation{
				Request:              req,
				Enable:               root.cfg.Enable,
				RequireConfiguration: root.cfg.RequireConfiguration,
			})
			cancel()
			switch {
			case errors.Is(err, domain.ErrDisabled), errors.Is(err, domain.ErrNoProjectConfig):
				root.log.Info("not starting biome", "reason", err.Error())
				return nil
			case err != nil:
				return err
			}

			return relay.Pipe(cmd.Context(), transport, os.Stdin, os.Stdout, root.log)
		},
	}
}
