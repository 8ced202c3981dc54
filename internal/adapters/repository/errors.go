package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrEmptyCommit   = errors.New("no rows to commit")
	ErrMixedMatches  = errors.New("rows span more than one match")
	ErrNumberTaken   = errors.New("jersey number already taken in team")
	ErrCoachAssigned = errors.New("coach already linked to another team")
	ErrDuplicateSlot = errors.New("player already in the match lineup")
)
