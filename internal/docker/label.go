package docker

import (
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/filters"
)

// Labels that Docker Compose puts on every container it creates. They are
// the only link between a running container and the compose file it came
// from.
const (
	// LabelComposeService holds the service name, e.g. "php".
	LabelComposeService = "com.docker.compose.service"

	// LabelComposeConfigFiles holds the comma-separated absolute paths of
	// the compose files the project was started with.
	LabelComposeConfigFiles = "com.docker.compose.project.config_files"

	// LabelComposeWorkingDir holds the project directory.
	LabelComposeWorkingDir = "com.docker.compose.project.working_dir"
)

// ServiceFilter builds a Docker API filter matching the containers of a
// compose service, in any project.
func ServiceFilter(service string) filters.Args {
	return filters.NewArgs(
		filters.Arg("label", LabelComposeService+"="+service),
	)
}

// MatchesComposeFile reports whether a container's labels tie it to
// composeFile, which must be an absolute path.
//
// The config_files label is authoritative when present. Containers created
// by older Compose releases only carry the working directory, which is
// then compared with the compose file's directory.
func MatchesComposeFile(labels map[string]string, composeFile string) bool {
	want := filepath.Clean(composeFile)

	if files, ok := labels[LabelComposeConfigFiles]; ok && files != "" {
		for _, f := range strings.Split(files, ",") {
			if filepath.Clean(strings.TrimSpace(f)) == want {
				return true
			}
		}
		return false
	}

	if dir, ok := labels[LabelComposeWorkingDir]; ok && dir != "" {
		return filepath.Clean(dir) == filepath.Dir(want)
	}
	return false
}
