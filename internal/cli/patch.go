package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-xdebug/internal/compose"
	"github.com/shinji-kodama/compose-xdebug/internal/devcontainer"
	"github.com/shinji-kodama/compose-xdebug/internal/docker"
	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// patchFlags holds the flag values of the root (toggle) command.
type patchFlags struct {
	service string // --service: compose service to patch
	value   string // --value: XDEBUG_MODE value written on disable
	dryRun  bool   // --dry-run: print a diff instead of writing
	verify  bool   // --verify: YAML check of the patched document
	restart bool   // --restart: docker compose up -d <service> after a change
}

// options converts the flags into patcher options, rejecting values that
// are usage errors.
func (f *patchFlags) options() (compose.Options, error) {
	if err := model.ValidateServiceName(f.service); err != nil {
		return compose.Options{}, model.WrapCLIError(model.ExitUsageError, "invalid --service", err)
	}
	if f.value == "" || strings.ContainsAny(f.value, " \t\r\n") {
		return compose.Options{}, model.NewCLIError(
			model.ExitUsageError,
			fmt.Sprintf("invalid --value %q: must be non-empty and contain no whitespace", f.value),
		)
	}
	return compose.Options{
		Service: f.service,
		Value:   f.value,
		DryRun:  f.dryRun,
		Verify:  f.verify,
	}, nil
}

// runPatch is the toggle workflow:
//  1. Parse the action and validate flags (usage errors, no file access)
//  2. Resolve a directory argument to a compose file
//  3. Patch the file (or compute the diff for --dry-run)
//  4. Optionally recreate the service's containers
//  5. Output the result (text or JSON)
func runPatch(cmd *cobra.Command, path, actionArg string, flags *patchFlags) error {
	action, err := model.ParseAction(actionArg)
	if err != nil {
		return model.WrapCLIError(model.ExitUsageError, "invalid arguments", err)
	}

	flags.service = serviceFor(cmd, path, flags.service)
	opts, err := flags.options()
	if err != nil {
		return err
	}

	composeFile, err := devcontainer.ResolveComposeFile(path, opts.Service)
	if err != nil {
		return err
	}
	if composeFile != path {
		VerboseLog("Resolved %s to compose file %s", path, composeFile)
	}

	VerboseLog("Applying %s to service %q in %s", action, opts.Service, composeFile)
	result, err := compose.PatchFile(composeFile, action, opts)
	if err != nil {
		return patchError(composeFile, err)
	}
	VerboseLog("Changed: %t", result.Changed)

	restarted := false
	if flags.restart && result.Changed && !result.DryRun {
		if err := restartService(cmd.Context(), composeFile, opts.Service); err != nil {
			return err
		}
		restarted = true
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return printPatchResultJSON(out, result, restarted)
	}
	printPatchResultText(out, result, restarted)
	return nil
}

// serviceFor returns the service to target. An explicit --service always
// wins; otherwise a project directory's devcontainer.json "service" replaces
// the default.
func serviceFor(cmd *cobra.Command, path, flagValue string) string {
	if cmd.Flags().Changed("service") {
		return flagValue
	}
	if service := devcontainer.DefaultService(path); service != "" {
		VerboseLog("Using service %q from devcontainer.json", service)
		return service
	}
	return flagValue
}

// patchError maps errors from the patcher to CLI errors with exit codes.
func patchError(composeFile string, err error) error {
	switch {
	case errors.Is(err, compose.ErrInvalidAction):
		return model.WrapCLIError(model.ExitUsageError, "invalid arguments", err)
	case errors.Is(err, compose.ErrNoAnchor):
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("cannot patch %s", composeFile),
			err,
		)
	case errors.Is(err, compose.ErrVerification):
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("refusing to write %s", composeFile),
			err,
		)
	case errors.Is(err, fs.ErrNotExist):
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("compose file not found: %s", composeFile),
			err,
		)
	default:
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to patch %s", composeFile),
			err,
		)
	}
}

// restartService applies the edited compose file to the running service.
func restartService(ctx context.Context, composeFile, service string) error {
	dockerCli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = dockerCli.Close() }()

	if err := dockerCli.Ping(ctx); err != nil {
		return err
	}

	VerboseLog("Running docker compose up -d %s", service)
	return docker.ComposeUp(ctx, composeFile, service)
}

// patchResultJSON is the JSON output of the toggle command.
type patchResultJSON struct {
	*model.PatchResult
	Restarted bool `json:"restarted"`
}

func printPatchResultJSON(w io.Writer, result *model.PatchResult, restarted bool) error {
	data, err := json.MarshalIndent(patchResultJSON{PatchResult: result, Restarted: restarted}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printPatchResultText prints the diff for dry runs and a one-line
// summary otherwise.
func printPatchResultText(w io.Writer, result *model.PatchResult, restarted bool) {
	if result.DryRun {
		fmt.Fprint(w, result.Diff)
		return
	}

	fmt.Fprintln(w, FormatPatchSummary(result))
	if restarted {
		fmt.Fprintf(w, "Recreated containers of service %q\n", result.Service)
	}
}

// FormatPatchSummary renders the one-line outcome of a toggle.
//
// Example:
//
//	Xdebug disabled for service "php" in docker-compose.yml (added line 8: - XDEBUG_MODE=off)
//	Xdebug already enabled for service "php" in docker-compose.yml, nothing to do
func FormatPatchSummary(result *model.PatchResult) string {
	state := model.StateDisabled
	if result.Action == model.ActionEnable {
		state = model.StateEnabled
	}

	if !result.Changed {
		return fmt.Sprintf("Xdebug already %s for service %q in %s, nothing to do",
			state, result.Service, result.File)
	}

	verb := "added"
	if result.Action == model.ActionEnable {
		verb = "removed"
	}
	return fmt.Sprintf("Xdebug %s for service %q in %s (%s line %d: %s)",
		state, result.Service, result.File, verb, result.Line, result.Entry)
}
