package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativewindow/internal/cli/styles"
	"github.com/bnema/nativewindow/internal/infrastructure/persistence/sqlite"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage saved window geometry",
	Long: `Windows opened with a state_key remember their size and position in the
window state database. These commands inspect and reset that state.`,
}

var stateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved window geometry, most recent first",
	Args:    cobra.NoArgs,
	RunE:    runStateList,
}

var stateDeleteCmd = &cobra.Command{
	Use:     "delete <state-key>...",
	Aliases: []string{"rm"},
	Short:   "Forget the saved geometry of windows",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runStateDelete,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateListCmd, stateDeleteCmd)
}

func runStateList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	states, err := app.WindowStates.List(ctx)
	if err != nil {
		return fmt.Errorf("list window state: %w", err)
	}

	db, err := app.DB.DB(ctx)
	if err != nil {
		return err
	}
	version, err := sqlite.GetMigrationStatus(ctx, db)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%s %s %s",
		app.Theme.Highlight.Render(styles.IconDatabase),
		app.Theme.Normal.Render(app.DB.Path()),
		app.Theme.MutedBadge(fmt.Sprintf("schema v%d", version)),
	)
	fmt.Println(header)

	if len(states) == 0 {
		fmt.Println(app.Theme.Subtle.Render("No saved window state."))
		return nil
	}

	rows := make([]styles.WindowStateRow, 0, len(states))
	for _, s := range states {
		rows = append(rows, styles.WindowStateRow{
			Key:       s.Key,
			Width:     s.Width,
			Height:    s.Height,
			X:         s.X,
			Y:         s.Y,
			UpdatedAt: s.UpdatedAt,
		})
	}
	fmt.Println(styles.RenderWindowStates(app.Theme, rows))
	return nil
}

func runStateDelete(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	for _, key := range args {
		if err := app.WindowStates.Delete(app.Ctx(), key); err != nil {
			return fmt.Errorf("delete window state %q: %w", key, err)
		}
		fmt.Printf("%s %s\n", app.Theme.SuccessStyle.Render(styles.IconCheck), key)
	}
	return nil
}
