package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// PatchFile reads the compose file at path, applies action and writes the
// result back. The action is validated before the file is opened.
//
// The file is written only when the content changed and every check passed:
// a missing anchor, a failed verification or DryRun all leave it untouched.
func PatchFile(path string, action model.Action, opts Options) (*model.PatchResult, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	opts = opts.withDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}
	lines := SplitLines(data)

	patched, result, err := Apply(lines, action, opts)
	if err != nil {
		return nil, err
	}
	result.File = path

	if opts.Verify {
		if err := Verify(JoinLines(patched), action, opts); err != nil {
			return nil, err
		}
	}

	if !result.Changed {
		return result, nil
	}

	if opts.DryRun {
		diff, err := Diff(path, lines, patched)
		if err != nil {
			return nil, err
		}
		result.DryRun = true
		result.Diff = diff
		return result, nil
	}

	if err := WriteFile(path, JoinLines(patched)); err != nil {
		return nil, err
	}
	return result, nil
}

// Inspect reports the configured Xdebug state of the service without
// modifying the file.
func Inspect(path string, opts Options) (*model.ServiceStatus, error) {
	opts = opts.withDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}
	lines := SplitLines(data)
	scan := ScanLines(lines, opts)

	status := &model.ServiceStatus{
		File:    path,
		Service: opts.Service,
	}

	switch {
	case scan.HasVariable():
		line := lines[scan.VariableEntry]
		status.State = model.StateDisabled
		status.Line = scan.VariableEntry + 1
		status.Entry = strings.TrimSpace(line)
		status.Value = entryValue(line)
	case scan.EnvironmentLine >= 0:
		status.State = model.StateEnabled
	default:
		status.State = model.StateUnknown
	}

	return status, nil
}

// WriteFile replaces the file at path with data. The new content is
// written to a temporary file in the same directory and renamed over the
// original, keeping its permission bits. Symlinks are resolved first so the
// link itself survives.
func WriteFile(path string, data []byte) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("failed to resolve compose file %s: %w", path, err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat compose file %s: %w", target, err)
	}

	if err := atomicwriter.WriteFile(target, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write compose file %s: %w", target, err)
	}
	return nil
}

// Diff renders the change between before and after as a unified diff with
// three lines of context.
func Diff(path string, before, after []string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to compute diff for %s: %w", path, err)
	}
	return diff, nil
}
