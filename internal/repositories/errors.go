package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an insert or update hits a unique key.
var ErrDuplicate = errors.New("duplicate entry")

const mysqlErrDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
