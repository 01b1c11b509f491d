package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dashwidgets/internal/host"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "widgets-host",
		Short: "Reference host for the dashboard widgets",
		Long: `widgets-host serves a table editor and a form renderer over HTTP and
stores what they emit in sqlite.

Configuration comes from defaults, an optional config file, .env files and
DASHWIDGETS_* environment variables, in increasing priority. Flags win over
all of them.

Environment Variables:
  DASHWIDGETS_ADDR        listen address (default :8080)
  DASHWIDGETS_DB_PATH     sqlite database (default dashwidgets.db)
  DASHWIDGETS_TABLE_FILE  table editor payload
  DASHWIDGETS_FORM_FILE   form payload
  DASHWIDGETS_THEME_FILE  theme object
  DASHWIDGETS_VERSION     widget version suffix (default 1.0.0)
  DASHWIDGETS_LOG_LEVEL   debug, info, warn or error`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configFile string
		envFiles   []string
		overrides  host.Config
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := host.LoadConfig(configFile, envFiles...)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, overrides)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := host.NewLogger(cmd.ErrOrStderr(), cfg.Level())
			store, err := host.OpenStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := host.NewApp(ctx, cfg, store, logger)
			if err != nil {
				return fmt.Errorf("start host: %w", err)
			}
			logger.Info("database", "path", cfg.DBPath)
			return app.Serve(ctx, cfg.Addr)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files to load")
	cmd.Flags().StringVarP(&overrides.Addr, "addr", "a", "", "listen address")
	cmd.Flags().StringVarP(&overrides.DBPath, "db", "d", "", "sqlite database path")
	cmd.Flags().StringVar(&overrides.TableFile, "table", "", "table editor payload")
	cmd.Flags().StringVar(&overrides.FormFile, "form", "", "form payload")
	cmd.Flags().StringVar(&overrides.ThemeFile, "theme", "", "theme object")
	cmd.Flags().StringVar(&overrides.ThemeManifest, "theme-manifest", "", "go-theme manifest (yaml or json)")
	cmd.Flags().StringVar(&overrides.ThemeVariant, "theme-variant", "", "manifest variant")
	cmd.Flags().StringVar(&overrides.Version, "version", "", "widget version suffix")
	cmd.Flags().StringVar(&overrides.LogLevel, "log-level", "", "log level")
	return cmd
}

// applyFlags copies the flags the user actually set over cfg.
func applyFlags(cmd *cobra.Command, cfg *host.Config, overrides host.Config) {
	set := func(name string, dst *string, value string) {
		if cmd.Flags().Changed(name) {
			*dst = value
		}
	}
	set("addr", &cfg.Addr, overrides.Addr)
	set("db", &cfg.DBPath, overrides.DBPath)
	set("table", &cfg.TableFile, overrides.TableFile)
	set("form", &cfg.FormFile, overrides.FormFile)
	set("theme", &cfg.ThemeFile, overrides.ThemeFile)
	set("theme-manifest", &cfg.ThemeManifest, overrides.ThemeManifest)
	set("theme-variant", &cfg.ThemeVariant, overrides.ThemeVariant)
	set("version", &cfg.Version, overrides.Version)
	set("log-level", &cfg.LogLevel, overrides.LogLevel)
}
