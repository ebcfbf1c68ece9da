package table

import "errors"

// Sentinel kinds for table errors.
var (
	ErrOpenTable        = errors.New("open table failed")
	ErrReadTable        = errors.New("read table failed")
	ErrEmptyTable       = errors.New("table has no header")
	ErrUnsupportedQuote = errors.New("unsupported quote character")
)
