package utils

import (
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// IsDuplicateKeyErr reports whether err is a storage-layer uniqueness
// violation. With TranslateError enabled gorm surfaces these as
// ErrDuplicatedKey on every engine; the raw MySQL 1062 check is kept for
// code paths that run outside a translated session.
func IsDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

// IsRecordNotFound also matches the package sentinel so callers can use
// one check for both gorm and model-level misses.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrorRecordNotFound)
}
