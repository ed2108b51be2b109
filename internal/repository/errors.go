package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	"gorm.io/gorm"
)

// ErrNoEncontrado signals an exact-match lookup that found no row. It is a
// validation condition for callers, distinct from connectivity or statement
// failures.
var ErrNoEncontrado = errors.New("no encontrado")

// ErrSinConexion signals that the store itself is unreachable (refused
// connection, dead socket, timeout). Handlers answer 503 for it, never a
// generic client error.
var ErrSinConexion = errors.New("sin conexión con la base de datos")

// translate maps low-level errors into the two domain sentinels. Everything
// else (constraint violations, statement errors) passes through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	if isConnectivity(err) {
		return fmt.Errorf("%w: %v", ErrSinConexion, err)
	}
	return err
}

func isConnectivity(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, context.DeadlineExceeded)
}
