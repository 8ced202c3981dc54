package seed

import "errors"

// Sentinel kinds for fixture loading errors.
var (
	ErrRead        = errors.New("read fixture failed")
	ErrParse       = errors.New("parse fixture failed")
	ErrBadDate     = errors.New("invalid date")
	ErrBadKind     = errors.New("invalid event kind")
	ErrBadPosition = errors.New("invalid position")
	ErrBadStatus   = errors.New("invalid match status")
)
