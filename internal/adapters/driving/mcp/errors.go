// Package mcp provides an MCP (Model Context Protocol) server adapter for chunkroute.
// It lets AI assistants compute download plans and browse stored manifests.
package mcp

import "errors"

var (
	// ErrMissingPlanService is returned when the plan service is not provided.
	ErrMissingPlanService = errors.New("mcp: plan service is required")

	// ErrMissingManifestService is returned when the manifest service is not provided.
	ErrMissingManifestService = errors.New("mcp: manifest service is required")

	// ErrManifestSource is returned when a tool call names neither or both of
	// an inline manifest and a stored one.
	ErrManifestSource = errors.New("mcp: provide exactly one of manifest or stored")
)
