package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAction_String verifies that Action values render as the words
// accepted on the command line.
func TestAction_String(t *testing.T) {
	assert.Equal(t, "enable", ActionEnable.String())
	assert.Equal(t, "disable", ActionDisable.String())
}

// TestAction_IsValid checks that only the two defined actions pass validation.
func TestAction_IsValid(t *testing.T) {
	assert.True(t, ActionEnable.IsValid())
	assert.True(t, ActionDisable.IsValid())
	assert.False(t, Action("toggle").IsValid())
	assert.False(t, Action("").IsValid())
}

// TestParseAction verifies string-to-action conversion. Unlike most enums
// in this package the match is case sensitive, so shell scripts that pass
// "Enable" fail loudly instead of silently working.
func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected Action
		hasError bool
	}{
		{"enable", ActionEnable, false},
		{"disable", ActionDisable, false},
		{"Enable", "", true},
		{"DISABLE", "", true},
		{"toggle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseAction(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				assert.Empty(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestXdebugState_String verifies the state names used in status output.
func TestXdebugState_String(t *testing.T) {
	assert.Equal(t, "enabled", StateEnabled.String())
	assert.Equal(t, "disabled", StateDisabled.String())
	assert.Equal(t, "unknown", StateUnknown.String())
}

func TestValidateServiceName(t *testing.T) {
	tests := []struct {
		name     string
		hasError bool
	}{
		{"php", false},
		{"php-fpm", false},
		{"php_8.3", false},
		{"app1", false},
		{"", true},
		{"-php", true},
		{"php fpm", true},
		{"php:", true},
		{"php(", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceName(tt.name)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitUsageError, "wrong number of arguments")
		assert.Equal(t, ExitUsageError, err.Code)
		assert.Equal(t, "wrong number of arguments", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to patch compose file", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Equal(t, "failed to patch compose file: permission denied", err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapCLIError(ExitDockerNotRunning, "Docker daemon is not running", inner)
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewCLIError(ExitUsageError, "bad action"))
		var cliErr *CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, ExitUsageError, cliErr.Code)
	})
}

// TestExitCodes pins the numeric values scripts depend on.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, int(ExitSuccess))
	assert.Equal(t, 1, int(ExitGeneralError))
	assert.Equal(t, 2, int(ExitUsageError))
	assert.Equal(t, 3, int(ExitDockerNotRunning))
}
