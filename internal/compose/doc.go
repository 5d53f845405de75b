// Package compose toggles the XDEBUG_MODE entry of one service in a Docker
// Compose file by editing the file line by line.
//
// The file is never round-tripped through a YAML serializer. It is split
// into lines that keep their original terminators, scanned once with a
// three-state machine (outside the service, inside the service, inside its
// environment list), and exactly one line is inserted or removed. Every
// other byte of the file, comments and CRLF line endings included, is
// written back unchanged.
//
// gopkg.in/yaml.v3 is only used to double-check a patched document when
// Options.Verify is set. Writes go through github.com/moby/sys/atomicwriter
// so an interrupted run never leaves a half-written compose file behind.
package compose
