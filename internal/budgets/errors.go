package budgets

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound covers both true absence and rows owned by another identity.
var ErrNotFound = errors.New("budget category not found")

// DuplicateError reports a name already taken by the same owner. ID is the
// holding row's identifier, empty when it could not be resolved.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	if e.ID == "" {
		return "duplicate budget category"
	}
	return fmt.Sprintf("duplicate of budget category %s", e.ID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
