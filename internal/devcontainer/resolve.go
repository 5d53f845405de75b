package devcontainer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/compose-xdebug/internal/compose"
	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// composeFileNames are the default file names looked up by "docker compose"
// in a project directory, in the order Compose itself prefers them.
var composeFileNames = []string{
	"compose.yaml",
	"compose.yml",
	"docker-compose.yaml",
	"docker-compose.yml",
}

// ResolveComposeFile turns the path given on the command line into the
// compose file to patch.
//
// Anything that is not a directory is returned unchanged; a missing file
// is reported later by the patcher as an I/O error. For a directory the
// lookup order is:
//  1. dockerComposeFile entries of the project's devcontainer.json, in order
//  2. the standard compose file names in the directory itself
//
// The first candidate whose service block has a non-empty environment list
// wins, so override files that only add volumes are skipped. Otherwise the
// first file declaring the service is returned, then the first existing
// file, so the patcher can report what is missing precisely.
func ResolveComposeFile(path, service string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path, nil
	}

	candidates := devcontainerComposeFiles(path)
	for _, name := range composeFileNames {
		candidates = append(candidates, filepath.Join(path, name))
	}

	var declaring, existing string
	for _, candidate := range candidates {
		lines, err := readLines(candidate)
		if err != nil {
			continue
		}
		if existing == "" {
			existing = candidate
		}
		scan := compose.ScanLines(lines, compose.Options{Service: service})
		if scan.HasAnchor() {
			return candidate, nil
		}
		if declaring == "" && scan.ServiceLine >= 0 {
			declaring = candidate
		}
	}

	if declaring != "" {
		return declaring, nil
	}
	if existing != "" {
		return existing, nil
	}

	return "", model.NewCLIError(
		model.ExitGeneralError,
		fmt.Sprintf("no compose file found in %s (searched devcontainer.json and compose.yaml, compose.yml, docker-compose.yaml, docker-compose.yml)", path),
	)
}

// DefaultService returns the "service" of the devcontainer.json found in the
// project directory path, or "" when path is not a directory or has no
// readable devcontainer.json naming a service.
func DefaultService(path string) string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return ""
	}

	jsonPath, err := FindDevContainerJSON(path)
	if err != nil {
		return ""
	}
	raw, err := LoadConfig(jsonPath)
	if err != nil {
		return ""
	}
	return raw.Service
}

// devcontainerComposeFiles returns the compose files referenced by the
// project's devcontainer.json, resolved relative to the JSON file. A missing
// or unparsable devcontainer.json yields no candidates.
func devcontainerComposeFiles(projectPath string) []string {
	jsonPath, err := FindDevContainerJSON(projectPath)
	if err != nil {
		return nil
	}

	raw, err := LoadConfig(jsonPath)
	if err != nil {
		return nil
	}

	baseDir := filepath.Dir(jsonPath)
	var files []string
	for _, f := range GetComposeFiles(raw) {
		if !filepath.IsAbs(f) {
			f = filepath.Join(baseDir, f)
		}
		files = append(files, f)
	}
	return files
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return compose.SplitLines(data), nil
}
