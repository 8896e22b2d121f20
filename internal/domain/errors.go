package domain

import (
	"context"
	"errors"
)

// Sentinel errors for the connect pipeline. Stage errors wrap one of these
// together with the underlying cause, so both match with errors.Is.
var (
	// ErrBinaryNotFound indicates no strategy resolved a Biome executable.
	ErrBinaryNotFound = errors.New("biome binary not found")

	// ErrSpawnFailure indicates the OS could not start the discovery process.
	ErrSpawnFailure = errors.New("spawn discovery process")

	// ErrNoEndpointProduced indicates the discovery process ended without printing an endpoint.
	ErrNoEndpointProduced = errors.New("discovery process produced no endpoint")

	// ErrConnectionNotEstablished indicates the bridge was asked to connect to an empty endpoint.
	ErrConnectionNotEstablished = errors.New("connection not established: empty endpoint")

	// ErrConnectFailure indicates the endpoint could not be opened or reported an error before readiness.
	ErrConnectFailure = errors.New("connect to biome server")

	// ErrInvalidInput indicates malformed locator input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDisabled indicates activation is switched off in configuration.
	ErrDisabled = errors.New("biome integration disabled")

	// ErrNoProjectConfig indicates a project configuration is required but none was found.
	ErrNoProjectConfig = errors.New("no biome.json found")

	// ErrConnectInProgress indicates another connect attempt is running on the same service.
	ErrConnectInProgress = errors.New("connect already in progress")
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrBinaryNotFound, "binary_not_found"},
	{ErrSpawnFailure, "spawn_failure"},
	{ErrNoEndpointProduced, "no_endpoint_produced"},
	{ErrConnectionNotEstablished, "connection_not_established"},
	{ErrConnectFailure, "connect_failure"},
	{ErrInvalidInput, "invalid_input"},
	{ErrDisabled, "disabled"},
	{ErrNoProjectConfig, "no_project_config"},
	{ErrConnectInProgress, "connect_in_progress"},
	{context.Canceled, "canceled"},
	{context.DeadlineExceeded, "timeout"},
}

// Kind returns a stable snake_case name for the failure class of err:
// "ok" for nil and "unknown" for errors outside the taxonomy.
func Kind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "unknown"
}
