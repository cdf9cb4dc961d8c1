package ir

import "errors"

// Error categories. Typed errors in this module answer errors.Is for one of them.
var (
	// ErrContractViolation means the caller passed an incomplete or malformed request
	ErrContractViolation = errors.New("contract violation")
	// ErrUnsupportedByDialect means the request is well formed but MySQL cannot express it
	ErrUnsupportedByDialect = errors.New("unsupported by MySQL")
)
