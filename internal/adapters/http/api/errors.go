package api

import (
	"errors"
	"fmt"

	"github.com/mkovel/pitchside/internal/adapters/repository"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// repositoryNotFound aliases the store's sentinel so handlers can map it
// to 404 without importing the repository package everywhere.
var repositoryNotFound = repository.ErrNotFound

// Wrap annotates err with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// WrapKind annotates err with the operation and a sentinel kind.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
