package compose

import "strings"

// SplitLines splits data into lines, keeping each line's terminator
// ("\n" or "\r\n"). A final line without a terminator is kept as is, so
// strings.Join(SplitLines(data), "") always reproduces data exactly.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	s := string(data)
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) []byte {
	return []byte(strings.Join(lines, ""))
}

// lineEnding returns the terminator of line, or "" for an unterminated line.
func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}

// leadingWhitespace returns the run of spaces and tabs at the start of line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
