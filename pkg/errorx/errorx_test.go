package errorx_test

import (
	"testing"

	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentionErrorUnwrapsLastOpenError(t *testing.T) {
	cause := errors.New("IO Error: Could not set lock on file")

	err := errors.WithStack(errorx.NewContentionError(cause, "/tmp/data.duckdb", 3))

	var contention *errorx.ContentionError
	require.True(t, errors.As(err, &contention))
	assert.Equal(t, "/tmp/data.duckdb", contention.Target)
	assert.Equal(t, 3, contention.Attempts)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "database locked")
}

func TestStatementErrorKeepsStatement(t *testing.T) {
	cause := errors.New("Parser Error: syntax error at or near \"SELEC\"")

	err := errorx.NewStatementError(cause, "SELEC 1")

	assert.Equal(t, "SELEC 1", err.Statement)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "SELEC 1")
}

func TestMisuseError(t *testing.T) {
	err := errorx.NewMisuseError("_df_", "reserved source name")

	var misuse *errorx.MisuseError
	require.True(t, errors.As(error(err), &misuse))
	assert.Equal(t, "_df_", misuse.Identifier)
	assert.Equal(t, "misuse of identifier '_df_': reserved source name", err.Error())
}

func TestDatabaseErrorWrapper(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "closing handle: boom", errorx.NewDatabaseErrorWrapper(cause, "closing %s", "handle").Error())
	assert.Equal(t, "no handle", errorx.NewDatabaseError("no handle").Error())
	assert.ErrorIs(t, errorx.NewGeneralErrorWrapper(cause, "general"), cause)
}
