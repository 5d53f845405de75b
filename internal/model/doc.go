// Package model defines the domain types and value objects for the
// compose-xdebug CLI.
//
// This package contains pure data structures with no external dependencies.
// Action and XdebugState are string enums (ParseAction validates the
// command-line argument). PatchResult and ServiceStatus are the command
// results rendered as text or JSON.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
