// Package main is the entry point for tango, a bidirectional
// synchronizer between Rust source files and their literate Markdown
// counterparts.
package main

import (
	"os"

	"github.com/Nasreen123/tango/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cmd.Execute(version, commit, date))
}
