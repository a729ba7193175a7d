// Package config loads and merges tango's project configuration: a
// YAML file at the project root, layered with command-line overrides,
// mirroring the config-then-flag-override layering the reference
// tooling this project is modeled on uses for its own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Nasreen123/tango/tangoerr"
)

// ReportFormat selects how a run's outcome is rendered to stdout.
type ReportFormat string

const (
	ReportText     ReportFormat = "text"
	ReportJSON     ReportFormat = "json"
	ReportMarkdown ReportFormat = "markdown"
)

// Config holds every knob the synchronization engine and its CLI
// wrapper recognize.
type Config struct {
	// Root is the project's working directory. All other paths are
	// resolved relative to it.
	Root string `yaml:"-"`

	// SourceDir and LiterateDir name the directories (relative to
	// Root) that hold .rs and .md files respectively. In the present
	// configuration both default to "src", matching the build-tool
	// constraint described in the design notes.
	SourceDir   string `yaml:"source_dir"`
	LiterateDir string `yaml:"literate_dir"`

	// StampFileName names the empty witness file (relative to Root)
	// whose mtime records the last successful run.
	StampFileName string `yaml:"stamp_file"`

	// CommentPrefix is the line-comment marker that introduces prose
	// lines in source files (e.g. "//").
	CommentPrefix string `yaml:"comment_prefix"`

	// SourceLanguageTag is the fence-opening language tag used when
	// emitting code blocks (e.g. "rust").
	SourceLanguageTag string `yaml:"source_language"`

	// PlaygroundBaseURL and PlaygroundVersionParam build the "play
	// this code" URL embedded after each fenced block.
	PlaygroundBaseURL      string `yaml:"playground_base_url"`
	PlaygroundVersionParam string `yaml:"playground_version"`

	// EmitRerunIf asks the CLI to print one
	// "cargo:rerun-if-changed=<path>" line per scheduled transform's
	// input, for the embedding build tool. Inputs whose pair needed no
	// regeneration are not listed.
	EmitRerunIf bool `yaml:"-"`

	// DryRun computes the plan and reports it without writing
	// anything.
	DryRun bool `yaml:"-"`

	// Workers caps how many goroutines the generate phase fans a
	// single direction's queue across. Zero means "pick automatically".
	Workers int `yaml:"workers"`

	// ReportFormat selects the run-summary rendering.
	ReportFormat ReportFormat `yaml:"report_format"`

	// Quiet suppresses the [WARN] lines written to stderr, printing only
	// the final report.
	Quiet bool `yaml:"-"`
}

// Default returns the configuration a bare `tango` invocation uses:
// both trees rooted at "src" (per the design notes), stamp file
// "tango.stamp", "//" prose prefix, "rust" fences, and the Rust
// Playground as the companion URL target.
func Default(root string) Config {
	return Config{
		Root:                   root,
		SourceDir:              "src",
		LiterateDir:            "src",
		StampFileName:          "tango.stamp",
		CommentPrefix:          "//",
		SourceLanguageTag:      "rust",
		PlaygroundBaseURL:      "https://play.rust-lang.org/?code=",
		PlaygroundVersionParam: "nightly",
		Workers:                0,
		ReportFormat:           ReportText,
	}
}

// Load reads a YAML configuration file at path and merges it over
// Default(root). A missing file is not an error: it simply means the
// defaults apply. A present-but-malformed file is a ConfigError.
func Load(root, path string) (Config, error) {
	cfg := Default(root)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &tangoerr.ConfigError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &tangoerr.ConfigError{Path: path, Err: err}
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		return cfg, &tangoerr.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Validate reports whether the configuration is internally
// consistent: non-empty directory names, a non-empty stamp file name,
// and a recognized report format.
func (c Config) Validate() error {
	if c.SourceDir == "" || c.LiterateDir == "" {
		return fmt.Errorf("source_dir and literate_dir must not be empty")
	}
	if c.StampFileName == "" {
		return fmt.Errorf("stamp_file must not be empty")
	}
	if c.CommentPrefix == "" {
		return fmt.Errorf("comment_prefix must not be empty")
	}
	switch c.ReportFormat {
	case ReportText, ReportJSON, ReportMarkdown:
	default:
		return fmt.Errorf("unrecognized report_format %q", c.ReportFormat)
	}
	return nil
}

// SourceRoot returns the absolute path to the source tree.
func (c Config) SourceRoot() string {
	return filepath.Join(c.Root, c.SourceDir)
}

// LiterateRoot returns the absolute path to the literate tree.
func (c Config) LiterateRoot() string {
	return filepath.Join(c.Root, c.LiterateDir)
}

// StampPath returns the absolute path to the stamp file.
func (c Config) StampPath() string {
	return filepath.Join(c.Root, c.StampFileName)
}

// ResolvedWorkers returns the effective generate-phase worker count:
// the configured override if positive, otherwise a count derived from
// available CPUs the same way the reference tool scales its
// file-parsing pool (a small, capped number, never more than the
// number of items being processed is for the caller to additionally
// clamp).
func (c Config) ResolvedWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	workers := runtime.NumCPU() / 2
	if workers < 2 {
		workers = 2
	}
	if workers > 4 {
		workers = 4
	}
	return workers
}
