package storage

import "errors"

// Sentinel errors of the archive contract. Backends return these and the
// gRPC transport maps status codes back onto them, so callers branch with
// errors.Is regardless of where the archive lives.
var (
	ErrNotFound    = errors.New("storage: not found")
	ErrInvalidCID  = errors.New("storage: invalid cid")
	ErrCIDMismatch = errors.New("storage: cid mismatch")
	ErrImmutable   = errors.New("storage: immutable object mismatch")
)

// IsNotFound reports whether err means the requested object is absent.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
