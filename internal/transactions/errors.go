package transactions

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound covers both true absence and rows owned by another identity.
// Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("transaction not found")

// DuplicateError reports a write that matched an existing row. ID is the
// surviving row's identifier, empty when it could not be resolved.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	if e.ID == "" {
		return "duplicate transaction"
	}
	return fmt.Sprintf("duplicate of transaction %s", e.ID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
