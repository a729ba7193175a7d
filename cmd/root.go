// Package cmd implements the command-line interface for tango, the
// bidirectional source/literate synchronizer.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nasreen123/tango/config"
)

// Version information (set from main via ldflags-style injection).
var (
	version string
	commit  string
	date    string
)

// Flag variables bound in init, mirroring the project's config-plus-
// flag-override layering: every flag here overrides the matching
// config.Config field only if explicitly set.
var (
	rootFlag    string
	configFlag  string
	rerunIfFlag bool
	dryRunFlag  bool
	workersFlag int
	formatFlag  string
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "tango",
	Short: "Bidirectional sync between Rust source and literate Markdown",
	Long: `tango keeps a tree of .rs source files and their literate .md
counterparts in sync. Editing either side and running tango
regenerates the other, using file modification times and a persistent
stamp file to decide which direction each pair last moved.`,
	RunE: runRoot,
}

// Execute runs the root command. Called from main.go.
func Execute(v, c, d string) int {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}

func init() {
	rootCmd.Flags().StringVarP(&rootFlag, "root", "r", ".", "project root containing the source and literate trees")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", ".tango.yaml", "path to a YAML configuration file, relative to --root")
	rootCmd.Flags().BoolVar(&rerunIfFlag, "rerun-if", false, "emit cargo:rerun-if-changed=<path> lines for the input of every scheduled transform")
	rootCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "compute and report the plan without writing anything")
	rootCmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "generate-phase worker count (0 picks automatically)")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "report format: text, json, or markdown (overrides config)")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress the [WARN] lines on stderr, printing only the final report")
}

// resolveConfig loads the on-disk configuration and layers the CLI
// flags actually set by the caller over it.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	configPath := configFlag
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(rootFlag, configPath)
	}

	cfg, err := config.Load(rootFlag, configPath)
	if err != nil {
		return cfg, err
	}

	cfg.Root = rootFlag
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRunFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workersFlag
	}
	if cmd.Flags().Changed("format") {
		cfg.ReportFormat = config.ReportFormat(formatFlag)
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = quietFlag
	}
	cfg.EmitRerunIf = rerunIfFlag

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
