package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-xdebug/internal/compose"
	"github.com/shinji-kodama/compose-xdebug/internal/devcontainer"
	"github.com/shinji-kodama/compose-xdebug/internal/docker"
	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// statusFlags holds the flag values for the status command.
type statusFlags struct {
	service    string // --service: compose service to inspect
	containers bool   // --containers: also query Docker for the live value
}

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	flags := &statusFlags{}

	cmd := &cobra.Command{
		Use:   "status <compose_file_path>",
		Short: "Show whether Xdebug is enabled for a service",
		Long: `Report the Xdebug state configured in a compose file without changing it.

With --containers, the service's containers are looked up through Docker
and the XDEBUG_MODE each one actually runs with is shown as well, which
tells whether a restart is still pending.

Examples:
  compose-xdebug status docker-compose.yml
  compose-xdebug status . --containers --json`,

		Args: exactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.service, "service", compose.DefaultService, "Compose service to inspect")
	cmd.Flags().BoolVar(&flags.containers, "containers", false, "Also show XDEBUG_MODE of the running containers")

	return cmd
}

func runStatus(cmd *cobra.Command, path string, flags *statusFlags) error {
	flags.service = serviceFor(cmd, path, flags.service)
	if err := model.ValidateServiceName(flags.service); err != nil {
		return model.WrapCLIError(model.ExitUsageError, "invalid --service", err)
	}
	opts := compose.Options{Service: flags.service}

	composeFile, err := devcontainer.ResolveComposeFile(path, opts.Service)
	if err != nil {
		return err
	}

	status, err := compose.Inspect(composeFile, opts)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("compose file not found: %s", composeFile), err)
		}
		return model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("failed to inspect %s", composeFile), err)
	}
	VerboseLog("Configured state of %q in %s: %s", status.Service, composeFile, status.State)

	if flags.containers {
		dockerCli, err := docker.NewClient()
		if err != nil {
			return err
		}
		defer func() { _ = dockerCli.Close() }()

		if err := dockerCli.Ping(cmd.Context()); err != nil {
			return err
		}

		containers, err := docker.ServiceContainers(cmd.Context(), dockerCli, composeFile, status.Service, compose.DefaultVariable)
		if err != nil {
			return err
		}
		VerboseLog("Found %d container(s) for service %q", len(containers), status.Service)
		status.Containers = containers
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return printStatusJSON(out, status, flags.containers)
	}
	printStatusText(out, status, flags.containers)
	return nil
}

func printStatusJSON(w io.Writer, status *model.ServiceStatus, withContainers bool) error {
	var v interface{} = status
	if withContainers {
		// Show [] rather than dropping the field when Docker was asked and
		// found nothing.
		type resultJSON struct {
			*model.ServiceStatus
			Containers []model.ContainerStatus `json:"containers"`
		}
		containers := status.Containers
		if containers == nil {
			containers = []model.ContainerStatus{}
		}
		v = resultJSON{ServiceStatus: status, Containers: containers}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printStatusText outputs the configured state and, when requested, a
// table of containers.
//
// The table format is:
//
//	CONTAINER            STATUS     XDEBUG_MODE
//	app-php-1            running    off
func printStatusText(w io.Writer, status *model.ServiceStatus, withContainers bool) {
	fmt.Fprintln(w, FormatStatusLine(status))

	if !withContainers {
		return
	}
	if len(status.Containers) == 0 {
		fmt.Fprintln(w, "No containers found for this service.")
		return
	}

	fmt.Fprintf(w, "%-20s %-10s %s\n", "CONTAINER", "STATUS", "XDEBUG_MODE")
	for _, c := range status.Containers {
		fmt.Fprintf(w, "%-20s %-10s %s\n", c.ContainerName, c.Status, FormatEnvValue(c.XdebugMode))
	}
}

// FormatStatusLine renders the configured state of a service.
func FormatStatusLine(status *model.ServiceStatus) string {
	switch status.State {
	case model.StateDisabled:
		return fmt.Sprintf("Xdebug disabled for service %q in %s (line %d: %s)",
			status.Service, status.File, status.Line, status.Entry)
	case model.StateEnabled:
		return fmt.Sprintf("Xdebug enabled for service %q in %s", status.Service, status.File)
	default:
		return fmt.Sprintf("Xdebug state unknown for service %q in %s: no environment list found",
			status.Service, status.File)
	}
}

// FormatEnvValue returns "-" for an unset variable.
func FormatEnvValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
