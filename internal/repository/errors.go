package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

var (
	ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")
	ErrLockContention = errors.New("LOCK_CONTENTION")
	ErrDuplicate      = errors.New("DUPLICATE")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	switch mysqlErr.Number {
	case mysqlErrDuplicateEntry:
		return ErrDuplicate
	case mysqlErrLockWaitTimeout, mysqlErrDeadlock:
		return ErrLockContention
	default:
		return err
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
