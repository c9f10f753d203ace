// Package cmd provides Cobra CLI commands for nativewindow.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/nativewindow/internal/cli"
	"github.com/bnema/nativewindow/internal/domain/build"
	"github.com/bnema/nativewindow/internal/infrastructure/config"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "nativewindow",
		Short: "Native windows with an embedded web view",
		Long: `nativewindow hosts native windows that embed a web view.

Windows are described as profiles in the configuration file and opened by
'nativewindow run'. Each window carries its own security policy: the origins
allowed to message the host and the hosts content may navigate to.

Backends:
  headless  in-process simulation, no display required
  gtk       GTK4 and WebKitGTK 6.0 (built with -tags webkit_cgo)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "schema":
				return nil
			}

			if err := config.Init(config.WithConfigFile(configPath)); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			var err error
			app, err = cli.NewApp(config.GetManager())
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default $XDG_CONFIG_HOME/nativewindow/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
