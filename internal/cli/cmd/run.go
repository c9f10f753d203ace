package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/nativewindow/internal/cli"
)

var (
	runBackend  string
	runProfiles []string
	runURL      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the configured windows and run until they are closed",
	Long: `Run opens every [[windows]] profile of the configuration and pumps the
windows until the last one is closed or the process is interrupted.

Trusted origins and allowed hosts of open windows follow edits of the
configuration file. When metrics.listen is set, Prometheus metrics are served
on /metrics.

Examples:
  nativewindow run
  nativewindow run --profile main --profile tools
  nativewindow run --url https://example.com --backend gtk`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runBackend, "backend", "b", "", "Platform backend: headless, gtk (default from config)")
	runCmd.Flags().StringSliceVarP(&runProfiles, "profile", "p", nil, "Only open these window profiles")
	runCmd.Flags().StringVarP(&runURL, "url", "u", "", "Open an extra window on this URL")
}

func runRun(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Host(ctx, cli.HostOptions{
		Backend:  runBackend,
		Profiles: runProfiles,
		URL:      runURL,
	})
}
