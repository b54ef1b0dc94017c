// Package integration runs dockcmd commands against a real Docker engine.
//
// Requirements:
//   - A reachable Docker engine (DOCKER_HOST or the default socket)
//   - Network access to pull alpine:3.20
//
// Running tests:
//
//	go test -tags integration -v -timeout 5m ./tests/integration/...
package integration
