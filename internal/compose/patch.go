package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// Defaults applied by Options when a field is left empty.
const (
	DefaultService  = "php"
	DefaultVariable = "XDEBUG_MODE"
	DefaultValue    = "off"
)

var (
	// ErrInvalidAction is returned for an action other than enable or disable.
	ErrInvalidAction = errors.New("invalid action")

	// ErrNoAnchor is returned by disable when the service has no environment
	// entry to insert after. The file is left untouched.
	ErrNoAnchor = errors.New("no environment entry to anchor the insertion")

	// ErrServiceNotFound and ErrEnvironmentNotFound narrow down ErrNoAnchor.
	ErrServiceNotFound     = errors.New("service not found")
	ErrEnvironmentNotFound = errors.New("environment list not found")
)

// Options configures the line patcher. The zero value targets XDEBUG_MODE
// in the php service and writes "off" on disable.
type Options struct {
	// Service is the compose service whose environment list is edited.
	Service string

	// Variable is the environment variable name to insert or remove.
	Variable string

	// Value is written as the variable's value on disable.
	Value string

	// DryRun computes the change and its diff without writing the file.
	DryRun bool

	// Verify re-parses the patched document as YAML before writing it.
	Verify bool
}

func (o Options) withDefaults() Options {
	if o.Service == "" {
		o.Service = DefaultService
	}
	if o.Variable == "" {
		o.Variable = DefaultVariable
	}
	if o.Value == "" {
		o.Value = DefaultValue
	}
	return o
}

// Apply computes the lines that result from applying action to lines.
// The input slice is not modified. The returned result has Changed set when
// a line was inserted or removed. File is left for the caller to fill in.
func Apply(lines []string, action model.Action, opts Options) ([]string, *model.PatchResult, error) {
	if !action.IsValid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	opts = opts.withDefaults()
	scan := ScanLines(lines, opts)

	result := &model.PatchResult{
		Service: opts.Service,
		Action:  action,
	}

	out := make([]string, len(lines))
	copy(out, lines)

	switch action {
	case model.ActionDisable:
		if scan.HasVariable() {
			return out, result, nil
		}
		if !scan.HasAnchor() {
			return nil, nil, noAnchorError(scan, opts.Service)
		}
		out = insertEntry(out, scan, opts)
		result.Changed = true
		result.Line = scan.FirstEntry + 2
		result.Entry = strings.TrimSpace(out[scan.FirstEntry+1])

	case model.ActionEnable:
		if !scan.HasVariable() {
			return out, result, nil
		}
		result.Changed = true
		result.Line = scan.VariableEntry + 1
		result.Entry = strings.TrimSpace(out[scan.VariableEntry])
		out = removeLine(out, scan.VariableEntry)
	}

	return out, result, nil
}

// insertEntry places "<indent>- VAR=value" right after the first entry.
// The new line copies the anchor's terminator. When the anchor is the last,
// unterminated line of the file, the anchor gets the previous line's
// terminator and the new line becomes the unterminated last line instead.
func insertEntry(lines []string, scan *Scan, opts Options) []string {
	anchor := scan.FirstEntry
	eol := lineEnding(lines[anchor])
	if eol == "" {
		lines[anchor] += fileLineEnding(lines, anchor)
	}

	entry := fmt.Sprintf("%s- %s=%s%s", scan.EntryIndent, opts.Variable, opts.Value, eol)

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:anchor+1]...)
	out = append(out, entry)
	out = append(out, lines[anchor+1:]...)
	return out
}

// fileLineEnding returns the terminator of the line before idx, or "\n"
// when there is none.
func fileLineEnding(lines []string, idx int) string {
	if idx > 0 {
		if eol := lineEnding(lines[idx-1]); eol != "" {
			return eol
		}
	}
	return "\n"
}

// removeLine deletes lines[idx]. If the removed line was the unterminated
// last line, the previous line loses its terminator so that disable followed
// by enable restores the original bytes.
func removeLine(lines []string, idx int) []string {
	unterminated := idx == len(lines)-1 && lineEnding(lines[idx]) == ""

	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:idx]...)
	out = append(out, lines[idx+1:]...)

	if unterminated && idx > 0 {
		prev := out[idx-1]
		out[idx-1] = strings.TrimSuffix(prev, lineEnding(prev))
	}
	return out
}

// noAnchorError explains why disable had nowhere to insert the entry.
func noAnchorError(scan *Scan, service string) error {
	switch {
	case scan.ServiceLine < 0:
		return fmt.Errorf("%w: %w: %q", ErrNoAnchor, ErrServiceNotFound, service)
	case scan.EnvironmentLine < 0:
		return fmt.Errorf("%w: %w in service %q", ErrNoAnchor, ErrEnvironmentNotFound, service)
	default:
		return fmt.Errorf("%w: environment list of service %q is empty", ErrNoAnchor, service)
	}
}

// entryValue returns the value part of an entry line such as
// "      - XDEBUG_MODE=off". Quoted items are unquoted first. Entries
// without '=' have an empty value.
func entryValue(line string) string {
	item := strings.TrimPrefix(strings.TrimSpace(line), "- ")
	item = strings.Trim(strings.TrimSpace(item), `"'`)
	_, value, _ := strings.Cut(item, "=")
	return strings.TrimSpace(value)
}
