package devcontainer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// testdataPath returns the path to a fixture project under testdata/.
// Each fixture directory mirrors a real project: a .devcontainer/
// subdirectory plus the compose files it references.
func testdataPath(t *testing.T, fixture string) string {
	t.Helper()
	return filepath.Join("testdata", fixture)
}

// --- LoadConfig tests ---

// TestLoadConfig_PhpStack verifies that a devcontainer.json with JSONC
// comments and trailing commas is parsed, including the compose fields.
func TestLoadConfig_PhpStack(t *testing.T) {
	path := filepath.Join(testdataPath(t, "php-stack"), ".devcontainer", "devcontainer.json")

	raw, err := LoadConfig(path)
	require.NoError(t, err, "LoadConfig should succeed for a valid devcontainer.json")

	assert.Equal(t, "php", raw.Service)
	assert.Equal(t, []string{"../docker-compose.yml", "docker-compose.extend.yml"}, GetComposeFiles(raw))
}

// TestLoadConfig_NotFound verifies that a missing file produces a CLIError
// with the general failure exit code.
func TestLoadConfig_NotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "devcontainer.json"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "error should be a CLIError")
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devcontainer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": `), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse devcontainer.json")
}

// --- GetComposeFiles tests ---

func TestGetComposeFiles_String(t *testing.T) {
	raw := &RawDevContainer{DockerComposeFile: "docker-compose.yml"}
	assert.Equal(t, []string{"docker-compose.yml"}, GetComposeFiles(raw))
}

func TestGetComposeFiles_Array(t *testing.T) {
	raw := &RawDevContainer{
		DockerComposeFile: []interface{}{"docker-compose.yml", 42, "docker-compose.dev.yml"},
	}
	// Non-string elements are skipped.
	assert.Equal(t, []string{"docker-compose.yml", "docker-compose.dev.yml"}, GetComposeFiles(raw))
}

func TestGetComposeFiles_Nil(t *testing.T) {
	assert.Nil(t, GetComposeFiles(&RawDevContainer{}))
	assert.Nil(t, GetComposeFiles(&RawDevContainer{DockerComposeFile: 42.0}))
}

// --- FindDevContainerJSON tests ---

func TestFindDevContainerJSON(t *testing.T) {
	dir := testdataPath(t, "php-stack")

	path, err := FindDevContainerJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".devcontainer", "devcontainer.json"), path)
}

// TestFindDevContainerJSON_RootLevel verifies the fallback to the
// alternative .devcontainer.json location.
func TestFindDevContainerJSON_RootLevel(t *testing.T) {
	dir := t.TempDir()
	expected := filepath.Join(dir, ".devcontainer.json")
	require.NoError(t, os.WriteFile(expected, []byte(`{"name": "root-level"}`), 0o644))

	path, err := FindDevContainerJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, expected, path)
}

func TestFindDevContainerJSON_NotFound(t *testing.T) {
	_, err := FindDevContainerJSON(t.TempDir())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}
