package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nasreen123/tango/engine"
	"github.com/Nasreen123/tango/report"
	"github.com/Nasreen123/tango/tangoerr"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	result, err := engine.RunArchive(context.Background(), cfg)
	if err != nil {
		return err
	}

	if cfg.EmitRerunIf {
		emitRerunIf(result)
	}

	summary := report.Summarize(result)
	fmt.Fprint(cmd.OutOrStdout(), report.ForFormat(cfg.ReportFormat).Format(summary))

	if !cfg.Quiet {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "[WARN] %s\n", w.String())
		}
	}

	return nil
}

// emitRerunIf prints one cargo:rerun-if-changed=<path> line per
// scheduled transform's input, for embedding in a build.rs consumer.
// Inputs whose pair needed no regeneration in this run are not listed.
func emitRerunIf(result engine.Result) {
	for _, t := range result.Plan.ToLiterate {
		fmt.Printf("cargo:rerun-if-changed=%s\n", t.Origin.String())
	}
	for _, t := range result.Plan.ToSource {
		fmt.Printf("cargo:rerun-if-changed=%s\n", t.Origin.String())
	}
}

// exitCodeFor maps a returned error to the process exit code: engine
// errors (I/O, check, mtime, concurrent-update, archive, config) exit
// 1; anything else (cobra usage/flag errors) exits 2.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *tangoerr.CheckError, *tangoerr.MtimeError, *tangoerr.IOError,
		*tangoerr.ConcurrentUpdateError, *tangoerr.ArchiveError, *tangoerr.ConfigError:
		fmt.Fprintf(os.Stderr, "tango: %v\n", err)
		return 1
	default:
		fmt.Fprintf(os.Stderr, "tango: %v\n", err)
		return 2
	}
}
