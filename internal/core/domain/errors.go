package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a service was built without the adapter it needs.
	ErrNotImplemented = errors.New("not implemented")

	// Manifest Errors.

	// ErrMalformedRecord indicates a manifest line with the wrong field count,
	// non-integer numeric fields, or a non-positive chunk size.
	ErrMalformedRecord = errors.New("malformed record")

	// Planning Errors.

	// ErrNoStartChunk indicates no chunk begins at byte 0.
	ErrNoStartChunk = errors.New("no chunk starts at byte 0")

	// ErrNoEndChunk indicates no chunk ends at the last byte of the image.
	ErrNoEndChunk = errors.New("no chunk ends at the last image byte")

	// ErrAmbiguousStartChunk indicates more than one chunk begins at byte 0.
	ErrAmbiguousStartChunk = errors.New("more than one chunk starts at byte 0")

	// ErrAmbiguousEndChunk indicates more than one chunk ends at the last image byte.
	ErrAmbiguousEndChunk = errors.New("more than one chunk ends at the last image byte")

	// ErrUnknownChunk indicates a chunk id absent from the catalog.
	// Raised from the graph or search it is an internal consistency fault.
	ErrUnknownChunk = errors.New("unknown chunk")

	// ErrNoPathFound indicates the end chunk is unreachable from the start chunk.
	ErrNoPathFound = errors.New("no covering path found")
)
