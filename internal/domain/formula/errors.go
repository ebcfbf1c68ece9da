package formula

import "errors"

// Sentinel kinds for formula errors.
var (
	ErrUnknownFormula = errors.New("unknown formula")
)
