package batch

import "errors"

var (
	// Caller errors, nothing is written
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidScoreInput = errors.New("invalid score input")
	ErrUnknownFarmer     = errors.New("unknown farmer")
	ErrRecordNotFound    = errors.New("batch not found")
	ErrAlreadyVerified   = errors.New("batch already verified")

	// Upstream errors, surfaced but never retried here
	ErrVersionConflict = errors.New("batch was modified by another request")
	ErrRegistryRead    = errors.New("failed to read from the registry")
	ErrRegistryWrite   = errors.New("failed to write to the registry")
	ErrDirectory       = errors.New("failed to look up the farmer directory")
)
