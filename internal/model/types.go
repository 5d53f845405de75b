// Package model defines the domain types for the compose-xdebug CLI.
//
// These types are passed between the CLI layer, the line patcher and the
// Docker integration. None of them is persisted: the compose file itself is
// the only state, and every value here is rebuilt from it on each run.
package model

import (
	"fmt"
	"regexp"
)

// Action is the toggle requested on the command line.
//
// The naming follows the debugger's point of view: "enable" removes the
// override entry so the image default applies, "disable" pins the variable
// to "off".
type Action string

const (
	// ActionEnable removes the XDEBUG_MODE entry from the service environment.
	ActionEnable Action = "enable"

	// ActionDisable inserts XDEBUG_MODE=off into the service environment.
	ActionDisable Action = "disable"
)

// String returns the string representation of Action.
func (a Action) String() string {
	return string(a)
}

// IsValid checks whether the Action value is one of the predefined actions.
func (a Action) IsValid() bool {
	switch a {
	case ActionEnable, ActionDisable:
		return true
	default:
		return false
	}
}

// ParseAction converts a command-line argument to an Action.
// Matching is exact: "Enable" is rejected just like "toggle".
func ParseAction(s string) (Action, error) {
	action := Action(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid action: %q (valid: enable, disable)", s)
	}
	return action, nil
}

// XdebugState describes what the compose file currently configures for
// the target service.
type XdebugState string

const (
	// StateEnabled means the service has an environment list without an
	// XDEBUG_MODE entry.
	StateEnabled XdebugState = "enabled"

	// StateDisabled means an XDEBUG_MODE entry is present.
	StateDisabled XdebugState = "disabled"

	// StateUnknown means the service block or its environment list could
	// not be located, so the toggle has nothing to work with.
	StateUnknown XdebugState = "unknown"
)

// String returns the string representation of XdebugState.
func (s XdebugState) String() string {
	return string(s)
}

// serviceNamePattern mirrors the service name rule of the Compose
// specification: an alphanumeric first character followed by
// alphanumerics, dots, underscores or hyphens.
var serviceNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateServiceName checks that a service name can be used as the
// target of the line patcher.
func ValidateServiceName(name string) error {
	if name == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if !serviceNamePattern.MatchString(name) {
		return fmt.Errorf("invalid service name %q: must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", name)
	}
	return nil
}

// PatchResult describes the outcome of one toggle.
type PatchResult struct {
	// File is the compose file that was patched.
	File string `json:"file"`

	// Service is the service block that was targeted.
	Service string `json:"service"`

	// Action is the requested toggle.
	Action Action `json:"action"`

	// Changed is false when the file already matched the requested state.
	Changed bool `json:"changed"`

	// Line is the 1-based line number of the inserted or removed entry.
	// Zero when nothing changed.
	Line int `json:"line,omitempty"`

	// Entry is the trimmed text of the inserted or removed line.
	Entry string `json:"entry,omitempty"`

	// DryRun is true when the change was computed but not written.
	DryRun bool `json:"dryRun,omitempty"`

	// Diff is the unified diff of the change. Only set for dry runs.
	Diff string `json:"diff,omitempty"`
}

// ServiceStatus is the configured (and optionally running) Xdebug state of
// a compose service.
type ServiceStatus struct {
	File    string      `json:"file"`
	Service string      `json:"service"`
	State   XdebugState `json:"state"`

	// Line is the 1-based line number of the XDEBUG_MODE entry, if any.
	Line int `json:"line,omitempty"`

	// Entry is the trimmed entry line, e.g. "- XDEBUG_MODE=off".
	Entry string `json:"entry,omitempty"`

	// Value is the part after '=' in Entry.
	Value string `json:"value,omitempty"`

	// Containers holds the live state of the service's containers.
	// Only populated when Docker was queried.
	Containers []ContainerStatus `json:"containers,omitempty"`
}

// ContainerStatus is the Xdebug state observed inside a running container.
type ContainerStatus struct {
	// ContainerID is the full Docker container ID (64-character hex string).
	ContainerID string `json:"containerId"`

	// ContainerName is the human-readable container name without the
	// leading "/" that the Docker API returns.
	ContainerName string `json:"containerName"`

	// Status is the Docker container state (e.g., "running", "exited").
	Status string `json:"status"`

	// XdebugMode is the value of XDEBUG_MODE in the container's
	// environment. Empty when the variable is not set.
	XdebugMode string `json:"xdebugMode"`
}

// ExitCode defines the process exit codes of the CLI.
// Scripts calling compose-xdebug rely on these values.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates the file could not be patched: no anchor
	// for the insertion, no compose file, a failed verification or an I/O
	// error.
	ExitGeneralError ExitCode = 1

	// ExitUsageError indicates a wrong argument count, an unknown action
	// or invalid flags. No file is touched in this case.
	ExitUsageError ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	// Only commands that talk to Docker return it.
	ExitDockerNotRunning ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As support.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
