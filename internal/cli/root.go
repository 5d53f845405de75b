// Package cli implements the cobra-based CLI of compose-xdebug.
//
// The root command performs the toggle itself (compose-xdebug <path>
// <enable|disable>); the read-only status subcommand lives in status.go.
// This file also owns the global flags and the error-to-exit-code mapping.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-xdebug/internal/compose"
	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput switches command output and errors to indented JSON.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// The root command toggles Xdebug; "status" is registered as a subcommand.
func NewRootCommand() *cobra.Command {
	flags := &patchFlags{}

	rootCmd := &cobra.Command{
		Use:   "compose-xdebug <compose_file_path> <enable|disable>",
		Short: "Toggle Xdebug for a docker-compose service",
		Long: `compose-xdebug switches Xdebug on or off for one service of a docker-compose
file by editing its environment list in place.

  disable  adds "XDEBUG_MODE=off" after the first entry of the service's
           environment list (no-op when an XDEBUG_MODE entry exists)
  enable   removes the first XDEBUG_MODE entry (no-op when there is none)

Only that one line changes; comments, ordering and indentation of the rest
of the file are preserved byte for byte. The path may also be a project
directory, in which case the compose file is taken from
.devcontainer/devcontainer.json or the standard compose file names.

Examples:
  compose-xdebug docker-compose.yml disable
  compose-xdebug . enable --restart
  compose-xdebug docker-compose.yml disable --service app --value debug --dry-run`,

		Args: exactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, args[0], args[1], flags)
		},

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().StringVar(&flags.service, "service", compose.DefaultService, "Compose service to patch")
	rootCmd.Flags().StringVar(&flags.value, "value", compose.DefaultValue, "XDEBUG_MODE value written on disable")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show the change as a unified diff without writing")
	rootCmd.Flags().BoolVar(&flags.verify, "verify", false, "Parse the patched file as YAML before writing it")
	rootCmd.Flags().BoolVar(&flags.restart, "restart", false, "Run 'docker compose up -d <service>' after a change")

	// Bad flags are usage errors, same as a wrong argument count.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitUsageError, "invalid flags", err)
	})

	rootCmd.AddCommand(NewStatusCommand())

	return rootCmd
}

// exactArgs is cobra.ExactArgs with the error mapped to a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return model.NewCLIError(
				model.ExitUsageError,
				fmt.Sprintf("expected %d arguments, got %d\nUsage: %s", n, len(args), cmd.UseLine()),
			)
		}
		return nil
	}
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		code, message, underlying := splitError(err)
		printError(message, underlying)
		os.Exit(int(code))
	}
}

// splitError extracts the exit code, message and underlying error that
// Execute reports. CLIError types carry their own exit codes; other errors
// default to exit code 1.
func splitError(err error) (model.ExitCode, string, error) {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code, cliErr.Message, cliErr.Err
	}
	return model.ExitGeneralError, err.Error(), nil
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
