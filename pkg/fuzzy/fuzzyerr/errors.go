// Package fuzzyerr defines the error taxonomy shared by the fuzzy packages.
// Call sites wrap these sentinels with context; match them with errors.Is.
package fuzzyerr

import "errors"

// Configuration errors
var (
	ErrDuplicateName     = errors.New("duplicate fuzzy set name")
	ErrDuplicateVariable = errors.New("duplicate variable")
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrUnknownSet        = errors.New("unknown fuzzy set")
	ErrDegenerateSet     = errors.New("degenerate fuzzy set")
	ErrInvalidParameters = errors.New("invalid fuzzy set parameters")
)

// Query errors
var (
	ErrMissingInput    = errors.New("missing input")
	ErrUnknownOperator = errors.New("unknown operator")
)
