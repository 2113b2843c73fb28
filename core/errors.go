package core

import "errors"

// Error kinds the core signals. Operations wrap one of these with
// fmt.Errorf("...: %w", ErrX) so callers can match with errors.Is; the
// HTTP adapter maps them to status codes.
var (
	ErrHashMismatch       = errors.New("hash mismatch")
	ErrLinkMismatch       = errors.New("link mismatch")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrCrossChainMismatch = errors.New("cross-chain mismatch")
	ErrRebuildFailed      = errors.New("rebuild failed")
	ErrNotFound           = errors.New("not found")
	ErrIOError            = errors.New("io error")
)
