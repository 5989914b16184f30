package models

import "errors"

// Sentinel errors surfaced to the caller with the offending identifier
// wrapped in. Upstream failures are not errors at this level: after one
// retry they degrade the single candidate's result instead of failing it.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
