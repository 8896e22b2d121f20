package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"biomelink/internal/adapter/locator"
	"biomelink/internal/adapter/logger"
	"biomelink/internal/adapter/platform"
	"biomelink/internal/adapter/server"
	"biomelink/internal/adapter/socket"
	"biomelink/internal/adapter/workspace"
	"biomelink/internal/app"
	"biomelink/internal/config"
	"biomelink/internal/domain"
	"biomelink/internal/telemetry"
)

// buildVersion is set at build time with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

// Exit codes.
const (
	exitOK             = 0
	exitError          = 1
	exitBinaryNotFound = 2
	exitLaunchFailure  = 3
	exitConnectFailure = 4
)

type rootOptions struct {
	configPath string
	root       string
	bin        string
	tmpDir     string
	timeout    time.Duration
	logLevel   string
	trace      bool

	cfg      *config.Config
	plat     *platform.Platform
	log      *logger.Slog
	shutdown func(context.Context) error
}

func (r *rootOptions) prepare(cmd *cobra.Command) error {
	path, err := config.ResolvePath(r.configPath)
	if err != nil {
		return err
	}
	r.configPath = path
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	r.cfg = cfg

	if !cmd.Flags().Changed("timeout") {
		r.timeout = cfg.ConnectTimeout
	}
	if r.timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	level := r.logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	r.log = logger.NewStderr(lvl)

	r.plat = platform.New()

	r.shutdown, err = telemetry.Setup(cmd.Context(), telemetry.Config{
		Enabled:        r.trace || cfg.Trace,
		Writer:         os.Stderr,
		ServiceVersion: buildVersion,
	})
	return err
}

func (r *rootOptions) finish(ctx context.Context) {
	if r.shutdown == nil {
		return
	}
	if err := r.shutdown(context.WithoutCancel(ctx)); err != nil {
		r.log.Warn("flush telemetry", "err", err)
	}
}

// request resolves the connect inputs from flags, environment and config.
func (r *rootOptions) request() (app.Request, error) {
	root, err := r.plat.ResolveRoot(r.root)
	if err != nil {
		return app.Request{}, err
	}
	override, err := r.plat.ResolveBinary(r.bin, r.cfg.Bin)
	if err != nil {
		return app.Request{}, err
	}
	return app.Request{
		Override: override,
		Root:     root,
		Platform: platform.Detect(),
		TmpDir:   r.plat.ResolveTempDir(r.tmpDir, r.cfg.TmpDir),
	}, nil
}

func (r *rootOptions) service() *app.Service {
	return app.NewService(
		locator.New(platform.Lookup),
		server.NewDiscoveryLauncher(r.log),
		socket.NewDialer(),
		workspace.NewFinder(),
		r.log,
	)
}

// connectContext bounds a connect attempt by the configured timeout.
func (r *rootOptions) connectContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "biomelink",
		Short:         "Connect a stdio client to the Biome language server",
		Version:       buildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.prepare(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $BIOMELINK_CONFIG or ~/.biomelink/config.yaml)")
	flags.StringVar(&opts.root, "root", "", "project root containing node_modules (default: cwd)")
	flags.StringVar(&opts.bin, "bin", "", "explicit biome binary (overrides $BIOMELINK_BIN and config)")
	flags.StringVar(&opts.tmpDir, "tmpdir", "", "temp directory passed to biome (default: $TMPDIR, config, system temp)")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultConnectTimeout, "bound on locate, discover and connect; 0 disables")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (default: config or info)")
	flags.BoolVar(&opts.trace, "trace", false, "export spans and metrics to stderr")

	rootCmd.AddCommand(newProxyCmd(opts))
	rootCmd.AddCommand(newLocateCmd(opts))
	rootCmd.AddCommand(newSocketCmd(opts))
	rootCmd.AddCommand(newDoctorCmd(opts))
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	opts := &rootOptions{}
	err := newRootCmd(opts).ExecuteContext(ctx)
	opts.finish(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "biomelink: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a pipeline error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrBinaryNotFound):
		return exitBinaryNotFound
	case errors.Is(err, domain.ErrSpawnFailure), errors.Is(err, domain.ErrNoEndpointProduced):
		return exitLaunchFailure
	case errors.Is(err, domain.ErrConnectFailure), errors.Is(err, domain.ErrConnectionNotEstablished):
		return exitConnectFailure
	default:
		return exitError
	}
}
