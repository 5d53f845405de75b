// container.go looks up the containers of a compose service and applies an
// edited compose file to them.
//
// Reading is done through the Docker SDK. Recreating containers is left to
// the docker compose CLI plugin, which already knows how to diff the
// service configuration against the running container.
package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/container"

	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// ServiceContainers returns the containers created from composeFile for
// service, including stopped ones, with the value of variable in each
// container's environment.
func ServiceContainers(ctx context.Context, cli *Client, composeFile, service, variable string) ([]model.ContainerStatus, error) {
	absFile, err := filepath.Abs(composeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve compose file path %s: %w", composeFile, err)
	}

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: ServiceFilter(service),
	})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker containers",
			err,
		)
	}

	result := make([]model.ContainerStatus, 0, len(containers))
	for _, c := range containers {
		if !MatchesComposeFile(c.Labels, absFile) {
			continue
		}

		inspect, err := cli.Inner().ContainerInspect(ctx, c.ID)
		if err != nil {
			return nil, model.WrapCLIError(
				model.ExitDockerNotRunning,
				fmt.Sprintf("failed to inspect container %s", shortID(c.ID)),
				err,
			)
		}

		var env []string
		if inspect.Config != nil {
			env = inspect.Config.Env
		}

		result = append(result, model.ContainerStatus{
			ContainerID:   c.ID,
			ContainerName: containerName(c.Names),
			Status:        string(c.State),
			XdebugMode:    EnvValue(env, variable),
		})
	}

	return result, nil
}

// EnvValue returns the value of name in a "KEY=VALUE" environment list,
// or "" when it is not set. Later entries win, as in a process environment.
func EnvValue(env []string, name string) string {
	value := ""
	for _, kv := range env {
		key, v, ok := strings.Cut(kv, "=")
		if ok && key == name {
			value = v
		}
	}
	return value
}

// containerName returns the first container name without the leading "/"
// that the Docker API adds.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// ComposeUp runs "docker compose -f <file> up -d <service>" from the compose
// file's directory. Compose notices the changed environment and recreates
// the service's containers; unrelated services are left alone.
func ComposeUp(ctx context.Context, composeFile, service string) error {
	// -f is resolved against cmd.Dir, so a relative path would be applied twice.
	absFile, err := filepath.Abs(composeFile)
	if err != nil {
		return fmt.Errorf("failed to resolve compose file path %s: %w", composeFile, err)
	}

	args := buildComposeArgs([]string{absFile})
	args = append(args, "up", "-d", service)

	return runCompose(ctx, filepath.Dir(absFile), args)
}

// buildComposeArgs constructs the common arguments for docker compose commands.
// Each compose file is specified with a -f flag.
func buildComposeArgs(composeFiles []string) []string {
	args := make([]string, 0, len(composeFiles)*2+1)
	args = append(args, "compose")
	for _, f := range composeFiles {
		args = append(args, "-f", f)
	}
	return args
}

// runCompose executes a docker compose command as a child process in
// projectDir, which is where Compose resolves relative paths from.
func runCompose(ctx context.Context, projectDir string, args []string) error {
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = projectDir
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("docker compose failed: %s", strings.TrimSpace(string(output))),
			err,
		)
	}

	return nil
}
