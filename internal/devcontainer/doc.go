// Package devcontainer locates the Docker Compose file to patch when the
// command line names a project directory instead of a file.
//
// Projects opened as Dev Containers already record their compose files in
// devcontainer.json (dockerComposeFile), so that list is consulted first.
// Plain Compose projects fall back to the file names "docker compose"
// itself looks for.
//
// JSONC (JSON with Comments) is supported via github.com/tidwall/jsonc,
// ensuring compatibility with the common practice of commenting
// devcontainer.json files.
package devcontainer
