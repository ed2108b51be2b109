package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate_RecordNotFound(t *testing.T) {
	err := translate(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, ErrNoEncontrado)
	assert.NotErrorIs(t, err, ErrSinConexion)
}

func TestTranslate_ConnectivityErrors(t *testing.T) {
	cases := []error{
		&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
		syscall.ECONNRESET,
		context.DeadlineExceeded,
		fmt.Errorf("exec: %w", syscall.EPIPE),
	}
	for _, cause := range cases {
		err := translate(cause)
		assert.ErrorIs(t, err, ErrSinConexion, "cause %v", cause)
		assert.NotErrorIs(t, err, ErrNoEncontrado, "cause %v", cause)
	}
}

func TestTranslate_StatementErrorPassesThrough(t *testing.T) {
	cause := errors.New(`ERROR: new row violates check constraint "detalle_factura_cantidad_check"`)
	err := translate(cause)
	assert.Equal(t, cause, err)
	assert.NotErrorIs(t, err, ErrSinConexion)
}

func TestTranslate_Nil(t *testing.T) {
	assert.NoError(t, translate(nil))
}
