package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mrp/internal/app"
	"mrp/internal/config"
	"mrp/internal/infrastructure"
)

type serveOptions struct {
	configPath string
	port       int
}

func newRootCommand(version string) *cobra.Command {
	opts := &serveOptions{}

	rootCmd := &cobra.Command{
		Use:   "mrp-server",
		Short: "Media rating platform HTTP server",
		Long: `mrp-server serves the media rating platform API over HTTP with JSON
payloads: user registration and login under /auth, the media catalogue under
/media, favorites under /favorite, the signed-in user's profile under /users,
and a liveness probe under /ping.

Running it without a subcommand is the same as "mrp-server serve".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $"+config.ConfigFileEnv+")")
	rootCmd.PersistentFlags().IntVar(&opts.port, "port", 0, "listen port, overrides config and environment")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newRoutesCommand(opts))

	return rootCmd
}

func newServeCommand(opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func newRoutesCommand(opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the controller prefix table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			application, err := app.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PREFIX\tCONTROLLER")
			for _, route := range application.Routes() {
				fmt.Fprintf(w, "%s\t%T\n", route.Prefix, route.Controller)
			}
			if cfg.Metrics.Enabled {
				fmt.Fprintf(w, "%s\t%s\n", cfg.Metrics.Path, "prometheus")
			}
			return w.Flush()
		},
	}
}

func loadConfig(cmd *cobra.Command, opts *serveOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	application, err := app.New(cfg, logger.Logger)
	if err != nil {
		logger.Error("failed to initialize application", slog.String("error", err.Error()))
		return err
	}

	return application.Run(cmd.Context())
}
