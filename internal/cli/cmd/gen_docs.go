package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/nativewindow/internal/infrastructure/config"
)

const dirPerm = 0o755

var genDocsOutputDir string

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Install man pages for nativewindow",
	Long: `Generate man pages from the command definitions.

The nativewindow-run page also lists every key of the configuration file,
taken from the configuration schema.

By default the pages are installed to ~/.local/share/man/man1/ so they are
available via 'man nativewindow'. You may need to run 'mandb' to update the
man page index.

Examples:
  nativewindow gen-docs                 # Install to ~/.local/share/man/man1/
  nativewindow gen-docs --output ./man  # Generate to a local directory`,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "Output directory for generated man pages")
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	outputDir := genDocsOutputDir
	if outputDir == "" {
		manDir, err := config.GetManDir()
		if err != nil {
			return fmt.Errorf("resolve man directory: %w", err)
		}
		outputDir = manDir
	}

	pages, err := generateManPages(outputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Installed man pages to %s\n", outputDir)
	fmt.Println("Run 'mandb' if 'man nativewindow' doesn't work immediately.")
	for _, page := range pages {
		fmt.Printf("  - %s\n", page)
	}
	return nil
}

// generateManPages writes one page per command into outputDir and returns
// the page file names.
func generateManPages(outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	header := &doc.GenManHeader{
		Title:   "NATIVEWINDOW",
		Section: "1",
		Source:  "nativewindow " + buildInfo.Version,
		Manual:  "nativewindow Manual",
		Date:    func() *time.Time { t := time.Now(); return &t }(),
	}

	// Reproducible output: no generation timestamp in the footer
	rootCmd.DisableAutoGenTag = true

	long := runCmd.Long
	runCmd.Long = long + "\n\n" + configurationSection(config.Schema())
	defer func() { runCmd.Long = long }()

	if err := doc.GenManTree(rootCmd, header, outputDir); err != nil {
		return nil, fmt.Errorf("generate man pages: %w", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, nil
	}
	var pages []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".1" {
			pages = append(pages, e.Name())
		}
	}
	return pages, nil
}

// configKey is one settable key of the configuration file.
type configKey struct {
	Path    string
	Type    string
	Values  []string
	Minimum string
}

func (k configKey) String() string {
	var b strings.Builder
	b.WriteString(k.Type)
	if len(k.Values) > 0 {
		b.WriteString(", one of ")
		b.WriteString(strings.Join(k.Values, ", "))
	}
	if k.Minimum != "" {
		b.WriteString(", at least ")
		b.WriteString(k.Minimum)
	}
	return b.String()
}

// configKeys flattens schema into dotted key paths in declaration order.
// Keys of array items are written as "name[].key".
func configKeys(schema *jsonschema.Schema) []configKey {
	var keys []configKey
	var walk func(prefix string, s *jsonschema.Schema)
	walk = func(prefix string, s *jsonschema.Schema) {
		s = resolveRef(schema, s)
		if s == nil || s.Properties == nil {
			return
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			path := pair.Key
			if prefix != "" {
				path = prefix + "." + pair.Key
			}
			prop := resolveRef(schema, pair.Value)
			switch {
			case hasProperties(prop):
				walk(path, prop)
			case prop.Type == "array" && hasProperties(resolveRef(schema, prop.Items)):
				walk(path+"[]", prop.Items)
			default:
				keys = append(keys, keyFor(schema, path, prop))
			}
		}
	}
	walk("", schema)
	return keys
}

func keyFor(root *jsonschema.Schema, path string, s *jsonschema.Schema) configKey {
	k := configKey{Path: path, Type: s.Type, Minimum: s.Minimum.String()}
	if s.Type == "array" && s.Items != nil {
		k.Type = "list of " + resolveRef(root, s.Items).Type
	}
	for _, v := range s.Enum {
		k.Values = append(k.Values, fmt.Sprint(v))
	}
	return k
}

func hasProperties(s *jsonschema.Schema) bool {
	return s != nil && s.Properties != nil && s.Properties.Len() > 0
}

func resolveRef(root, s *jsonschema.Schema) *jsonschema.Schema {
	for s != nil && s.Ref != "" {
		name, ok := strings.CutPrefix(s.Ref, "#/$defs/")
		if !ok {
			return s
		}
		def, ok := root.Definitions[name]
		if !ok {
			return s
		}
		s = def
	}
	return s
}

// configurationSection renders the configuration keys as a man page section.
func configurationSection(schema *jsonschema.Schema) string {
	var b strings.Builder
	b.WriteString("# CONFIGURATION\n\n")
	b.WriteString("Keys of config.toml. Environment variables prefixed with NATIVEWINDOW_ override them.\n\n")
	for _, k := range configKeys(schema) {
		fmt.Fprintf(&b, "- **%s**: %s\n", k.Path, k)
	}
	return b.String()
}
