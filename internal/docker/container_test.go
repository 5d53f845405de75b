package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvValue(t *testing.T) {
	tests := []struct {
		name string
		env  []string
		want string
	}{
		{
			name: "variable set",
			env:  []string{"PATH=/usr/local/bin:/usr/bin", "XDEBUG_MODE=off"},
			want: "off",
		},
		{
			name: "variable missing",
			env:  []string{"PATH=/usr/bin", "PHP_VERSION=8.3.12"},
			want: "",
		},
		{
			name: "value containing '='",
			env:  []string{"XDEBUG_MODE=debug", "XDEBUG_CONFIG=client_host=host.docker.internal"},
			want: "debug",
		},
		{
			name: "prefix of another name is not a match",
			env:  []string{"XDEBUG_MODE_EXTRA=1"},
			want: "",
		},
		{
			name: "last entry wins",
			env:  []string{"XDEBUG_MODE=debug", "XDEBUG_MODE=off"},
			want: "off",
		},
		{
			name: "nil environment",
			env:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvValue(tt.env, "XDEBUG_MODE"))
		})
	}
}

func TestContainerName(t *testing.T) {
	assert.Equal(t, "app-php-1", containerName([]string{"/app-php-1"}))
	assert.Equal(t, "app-php-1", containerName([]string{"/app-php-1", "/alias"}))
	assert.Equal(t, "", containerName(nil))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortID("0123456789abcdef0123456789abcdef"))
	assert.Equal(t, "abc", shortID("abc"))
}

// TestBuildComposeArgs verifies that each compose file gets its own -f flag
// after the "compose" subcommand.
func TestBuildComposeArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"compose", "-f", "/srv/app/docker-compose.yml"},
		buildComposeArgs([]string{"/srv/app/docker-compose.yml"}))

	assert.Equal(t,
		[]string{"compose", "-f", "a.yml", "-f", "b.yml"},
		buildComposeArgs([]string{"a.yml", "b.yml"}))

	assert.Equal(t, []string{"compose"}, buildComposeArgs(nil))
}
