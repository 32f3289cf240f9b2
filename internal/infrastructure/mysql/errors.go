package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry  = 1062
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
	errNoReferencedRow = 1452
)

// IsDuplicateEntry reports a unique-key violation.
func IsDuplicateEntry(err error) bool {
	return hasCode(err, errDuplicateEntry)
}

// IsDeadlock reports an aborted transaction that InnoDB rolled back as a
// deadlock victim or after a lock wait timeout.
func IsDeadlock(err error) bool {
	return hasCode(err, errDeadlock, errLockWaitTimeout)
}

// IsForeignKeyViolation reports an insert referencing a missing parent row.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, errNoReferencedRow)
}

func hasCode(err error, codes ...uint16) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	for _, code := range codes {
		if mysqlErr.Number == code {
			return true
		}
	}
	return false
}
