// Package main is the entry point for the compose-xdebug CLI.
//
// The binary toggles Xdebug for a docker-compose service by inserting or
// removing its XDEBUG_MODE environment entry. All functionality lives in
// internal/cli.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/compose-xdebug/internal/cli"
)

// version, commit, and date are set at build time via ldflags
// (-X main.version=...).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
