package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"tracewing-backend/internal/apperror"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound means the queried row does not exist.
	ErrNotFound = errors.New("record not found")
)

// translate maps driver errors to the repository vocabulary. Connectivity
// failures become apperror Unavailable so they are never mistaken for domain errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isDuplicate(err) {
		return ErrDuplicate
	}
	if isConnectivity(err) {
		return apperror.Unavailable(err)
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// dialects without an error translator still report the constraint in the text
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
