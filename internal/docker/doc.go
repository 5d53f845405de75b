// Package docker connects compose-xdebug to the Docker Engine.
//
// A toggle only edits the compose file; containers keep the environment
// they were created with until Compose recreates them. This package covers
// both sides of that gap:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Lookup of the containers Compose created for a service, and of the
//     XDEBUG_MODE value they are actually running with
//   - "docker compose up -d <service>" to apply an edited file
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
