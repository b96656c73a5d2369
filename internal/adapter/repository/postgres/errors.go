package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// uniqueViolation is the postgres error code raised when a write breaks a
// unique constraint.
const uniqueViolation = "23505"

// isOrderKeyConflict reports whether err is a unique violation on one of the
// (parent, order_key) constraints. That constraint is the sole serialization
// point for concurrent writers racing on the same gap.
func isOrderKeyConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && strings.Contains(pqErr.Constraint, "order_key")
}
