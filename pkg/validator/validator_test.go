package validator_test

import (
	"testing"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/marcodd23/go-duckdb-core/pkg/validator"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConnConfig(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(dbx.ConnConfig{Target: dbx.InMemoryTarget}))

	err := v.Validate(dbx.ConnConfig{Target: "", Threads: -1})
	require.Error(t, err)

	var valErr *validator.ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Len(t, valErr.GetErrorsDetails(), 2)
	assert.Equal(t, "ConnConfig.Target", valErr.GetErrorsDetails()[0].FailedField)
	assert.Equal(t, "required", valErr.GetErrorsDetails()[0].Tag)
	assert.Equal(t, "ConnConfig.Threads", valErr.GetErrorsDetails()[1].FailedField)
	assert.Contains(t, err.Error(), `"tag":"gte"`)
}

func TestNewValidatorIsShared(t *testing.T) {
	assert.Same(t, validator.NewValidator(), validator.NewValidator())
}
