package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativewindow/internal/cli/styles"
	"github.com/bnema/nativewindow/internal/infrastructure/platform/gtk"
	"github.com/bnema/nativewindow/pkg/nativewindow"
)

var (
	doctorBackend string
	doctorPrefix  string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a platform backend can run on this host",
	Long: `Doctor checks the prerequisites of a platform backend.

The headless backend has none. The GTK backend needs a binary built with the
webkit_cgo tag plus GTK4 and WebKitGTK 6.0, probed with pkg-config.

Examples:
  nativewindow doctor
  nativewindow doctor --backend gtk
  nativewindow doctor --backend gtk --prefix /opt/gnome`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVarP(&doctorBackend, "backend", "b", "", "Platform backend to check (default from config)")
	doctorCmd.Flags().StringVar(&doctorPrefix, "prefix", "", "Custom install prefix searched before the system pkg-config path")
}

func runDoctor(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	backend := doctorBackend
	if backend == "" {
		backend = string(app.Config.Platform.Backend)
	}

	status, err := nativewindow.CheckRuntime(app.Ctx(), backend, doctorPrefix)
	if err != nil {
		return err
	}

	report := styles.DoctorReport{
		Platform:  status.Platform,
		Compiled:  status.Platform != nativewindow.BackendGTK || gtk.Available(),
		Available: status.Available,
		Prefix:    doctorPrefix,
		Checks:    make([]styles.DoctorRuntimeCheck, 0, len(status.Checks)),
	}
	for _, c := range status.Checks {
		report.Checks = append(report.Checks, styles.DoctorRuntimeCheck{
			Name:            c.DisplayName,
			PkgConfigName:   c.PkgConfigName,
			Installed:       c.Installed,
			Version:         c.Version,
			RequiredVersion: c.RequiredVersion,
			OK:              c.MeetsRequirement,
			Error:           c.Error,
		})
	}

	fmt.Println(styles.NewDoctorRenderer(app.Theme).Render(report))

	if !status.Available {
		return fmt.Errorf("%s backend requirements not met", status.Platform)
	}
	return nil
}
