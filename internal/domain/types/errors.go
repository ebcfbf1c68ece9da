package types

import "errors"

// Sentinel error kinds for row access. These allow errors.Is from callers.
var (
	ErrMissingField      = errors.New("missing field")
	ErrUnparseableNumber = errors.New("unparseable number")
)
