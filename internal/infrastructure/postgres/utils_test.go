package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCode(t *testing.T) {
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}
	assert.Equal(t, codeForeignKeyViolation, pgErrorCode(fk))
	assert.Equal(t, codeCheckViolation, pgErrorCode(fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeCheckViolation})))
	assert.Equal(t, "", pgErrorCode(errors.New("timeout")))
}
