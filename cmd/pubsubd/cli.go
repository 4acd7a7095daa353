package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pubsubd/internal/app"
	"pubsubd/internal/common/fsutil"
	"pubsubd/internal/config"
	"pubsubd/internal/httpapi"
	"pubsubd/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// defaultConfigPaths are searched in order when --config is not given.
var defaultConfigPaths = []string{
	"pubsubd.yaml",
	"pubsubd.yml",
	"pubsubd.toml",
	"pubsubd.json",
	"~/.config/pubsubd/config.yaml",
}

const shutdownTimeout = 5 * time.Second

// serveFlags mirror the config fields that can be overridden on the command line.
type serveFlags struct {
	configPath string
	addr       string
	logLevel   string
	logFormat  string
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pubsubd",
		Short:         "In-process publish/subscribe registry served over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var f serveFlags
	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the HTTP server",
		Example: "  pubsubd serve --config pubsubd.yaml\n  PUBSUBD_ADDR=:9090 pubsubd serve",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd.ErrOrStderr())
		},
	}
	serveCmd.Flags().StringVar(&f.configPath, "config", "", "Path to a yaml, json or toml config file")
	serveCmd.Flags().StringVar(&f.addr, "addr", "", "HTTP listen address (default "+config.DefaultAddr+")")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: trace|debug|info|warn|error|off")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: console|json")
	root.AddCommand(serveCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pubsubd %s\n", version)
			return err
		},
	})

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	root.AddCommand(completionCmd)

	return root
}

// resolveConfig layers the config file, PUBSUBD_* environment and explicitly
// set flags, in that order.
func resolveConfig(cmd *cobra.Command, f serveFlags) (config.Config, error) {
	var cfg config.Config
	path := f.configPath
	if path == "" {
		path = fsutil.FirstExisting(defaultConfigPaths...)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = f.addr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	cfg = cfg.Defaults()
	return cfg, cfg.Validate()
}

// runServe hosts the registry until ctx is canceled, then shuts down gracefully.
func runServe(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	cfg = cfg.Defaults()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	log := logging.Component(logger, "serve")

	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	httpapi.SetLogger(logging.Component(logger, "http"))
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{Handler: httpapi.NewMux(a), ReadHeaderTimeout: 10 * time.Second}

	if err := a.Start(ctx); err != nil {
		_ = ln.Close()
		return fmt.Errorf("start: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("registry", a.Registry().Name()).Int("subscriptions", a.Registry().Len()).Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case serveErr = <-errCh:
		log.Error().Err(serveErr).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("stopping listeners failed")
	}
	cancelBase()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return serveErr
}
