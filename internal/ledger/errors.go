package ledger

import (
	"errors"
	"fmt"

	"github.com/claimledger-lab/claimledger/internal/core/storage"
)

var (
	// ErrInvalidArgument marks a missing or malformed required field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a claim lookup misses.
	ErrNotFound = storage.ErrNotFound
)

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
