package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"biomelink/internal/adapter/platform"
	"biomelink/internal/adapter/version"
	"biomelink/internal/adapter/workspace"
)

func newDoctorCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print local diagnostic information for troubleshooting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			req, err := root.request()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "biomelink_version=%s\n", buildVersion)
			fmt.Fprintf(out, "go_platform=%s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "platform=%s\n", req.Platform)
			if target, ok := platform.Lookup(req.Platform); ok {
				fmt.Fprintf(out, "triplet=%s\n", target.Triplet)
				fmt.Fprintf(out, "package=%s\n", target.Package)
			} else {
				fmt.Fprintln(out, "warning=unsupported_platform")
			}
			keys := platform.Keys()
			supported := make([]string, 0, len(keys))
			for _, k := range keys {
				supported = append(supported, k.String())
			}
			fmt.Fprintf(out, "supported_platforms=%s\n", strings.Join(supported, ","))
			fmt.Fprintf(out, "config_path=%s\n", root.configPath)
			fmt.Fprintf(out, "enable=%t\n", root.cfg.Enable)
			fmt.Fprintf(out, "require_configuration=%t\n", root.cfg.RequireConfiguration)
			fmt.Fprintf(out, "connect_timeout=%s\n", root.timeout)
			fmt.Fprintf(out, "root=%s\n", req.Root)
			fmt.Fprintf(out, "override=%s\n", req.Override)
			fmt.Fprintf(out, "tmpdir=%s\n", req.TmpDir)

			if path, found, err := workspace.NewFinder().FindConfig(req.Root); err != nil {
				fmt.Fprintf(out, "project_config_error=%s\n", err)
			} else if found {
				fmt.Fprintf(out, "project_config=%s\n", path)
			} else {
				fmt.Fprintln(out, "project_config_present=false")
			}

			bin, err := root.service().Locate(req)
			if err != nil {
				fmt.Fprintf(out, "binary_error=%s\n", err)
				return nil
			}
			fmt.Fprintf(out, "binary=%s\n", bin)

			v, err := version.Probe(cmd.Context(), bin)
			if err != nil {
				fmt.Fprintf(out, "biome_version_error=%s\n", err)
				return nil
			}
			fmt.Fprintf(out, "biome_version=%s\n", v)
			return nil
		},
	}
}
