package compose

import (
	"regexp"
	"strings"
)

// defaultEntryIndent is used for a new entry when the environment list
// has no item to copy the indentation from.
const defaultEntryIndent = "      "

// environmentHeader matches the environment key of a service. It must be
// indented by at least four spaces, which keeps top-level keys named
// "environment" out of the match.
var environmentHeader = regexp.MustCompile(`^\s{4,}environment\s*:`)

// scanState is the position of the scanner relative to the target service.
type scanState int

const (
	stateOutside scanState = iota
	stateInService
	stateInEnvironment
)

// Scan is the result of a single forward pass over a compose document.
// All indexes are 0-based positions in the scanned line slice, -1 when
// the corresponding line was not seen.
type Scan struct {
	// ServiceLine is the index of the first service header line.
	ServiceLine int

	// EnvironmentLine is the index of the first environment header inside
	// the service block.
	EnvironmentLine int

	// FirstEntry is the index of the first list item of the environment
	// list. New entries are inserted right after it.
	FirstEntry int

	// EntryIndent is the indentation of the first list item, or
	// defaultEntryIndent when the list is empty.
	EntryIndent string

	// VariableEntry is the index of the first list item that mentions the
	// variable name.
	VariableEntry int

	// Entries counts the list items seen across the service's environment
	// lists.
	Entries int
}

// HasAnchor reports whether an existing entry was found to insert after.
func (s *Scan) HasAnchor() bool {
	return s.FirstEntry >= 0
}

// HasVariable reports whether the variable entry is present.
func (s *Scan) HasVariable() bool {
	return s.VariableEntry >= 0
}

// serviceHeader builds the pattern for a service key indented by zero to
// two spaces: "php:" in legacy files, "  php:" under "services:".
func serviceHeader(service string) *regexp.Regexp {
	return regexp.MustCompile(`^\s{0,2}` + regexp.QuoteMeta(service) + `\s*:`)
}

// endsServiceBlock reports whether line closes a service block whose header
// was indented by headerIndent characters.
//
// Any non-blank line starting in column zero closes the block. For a header
// nested under "services:", a sibling key at the header's indentation
// closes it as well, so environment lists of the following services are
// never attributed to the target. Comments only count in column zero.
func endsServiceBlock(line string, headerIndent int) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	indent := len(leadingWhitespace(line))
	if indent == 0 {
		return true
	}
	return indent <= headerIndent && !strings.HasPrefix(trimmed, "#")
}

// ScanLines walks lines once and locates the service block, its
// environment list, the first list item and the variable entry.
func ScanLines(lines []string, opts Options) *Scan {
	opts = opts.withDefaults()
	header := serviceHeader(opts.Service)

	scan := &Scan{
		ServiceLine:     -1,
		EnvironmentLine: -1,
		FirstEntry:      -1,
		EntryIndent:     defaultEntryIndent,
		VariableEntry:   -1,
	}

	state := stateOutside
	headerIndent := 0

	for i, line := range lines {
		// A service header (re)starts the block, whatever came before it.
		if header.MatchString(line) {
			state = stateInService
			headerIndent = len(leadingWhitespace(line))
			if scan.ServiceLine < 0 {
				scan.ServiceLine = i
			}
			continue
		}

		if state == stateOutside {
			continue
		}

		if endsServiceBlock(line, headerIndent) {
			state = stateOutside
			continue
		}

		if environmentHeader.MatchString(line) {
			state = stateInEnvironment
			if scan.EnvironmentLine < 0 {
				scan.EnvironmentLine = i
			}
			continue
		}

		if state != stateInEnvironment {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- "):
			scan.Entries++
			if scan.FirstEntry < 0 {
				scan.FirstEntry = i
				scan.EntryIndent = leadingWhitespace(line)
			}
			if scan.VariableEntry < 0 && strings.Contains(line, opts.Variable) {
				scan.VariableEntry = i
			}
		case trimmed != "":
			// First key after the list, e.g. "ports:".
			state = stateInService
		}
	}

	return scan
}
