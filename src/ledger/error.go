package ledger

import "errors"

var (
	ErrFailedToParse  = errors.New("failed to parse response")
	ErrUnknownBackend = errors.New("unknown registry backend")
)
