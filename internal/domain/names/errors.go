package names

import "errors"

// Sentinel kinds for name resolution errors.
var (
	ErrUnknownPlayer   = errors.New("unknown player identifier")
	ErrAmbiguousPlayer = errors.New("ambiguous player identifier")
)
