package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativewindow/internal/infrastructure/config"
)

var schemaOutputDir string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Long: `Schema prints the JSON schema of config.toml, for editors that validate
TOML against a schema.

Examples:
  nativewindow schema
  nativewindow schema --output ~/.config/nativewindow`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputDir, "output", "o", "", "Write config.schema.json into this directory")
}

func runSchema(_ *cobra.Command, _ []string) error {
	if schemaOutputDir != "" {
		path, err := config.WriteSchemaFile(schemaOutputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
