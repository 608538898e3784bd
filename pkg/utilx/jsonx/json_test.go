package jsonx_test

import (
	"testing"

	"github.com/marcodd23/go-duckdb-core/pkg/utilx/jsonx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeKeyIsOrderAndTypeSensitive(t *testing.T) {
	k1, err := jsonx.CompositeKey("SELECT ?", 1)
	require.NoError(t, err)
	k2, err := jsonx.CompositeKey("SELECT ?", "1")
	require.NoError(t, err)
	k3, err := jsonx.CompositeKey("SELECT  ?", 1)
	require.NoError(t, err)
	k4, err := jsonx.CompositeKey(1, "SELECT ?")
	require.NoError(t, err)

	assert.Equal(t, `[{"t":"string","v":"SELECT ?"},{"t":"int","v":1}]`, k1)
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
}

func TestCompositeKeySeparatesBytesFromBase64Text(t *testing.T) {
	raw, err := jsonx.CompositeKey("SELECT ?", []byte("abc"))
	require.NoError(t, err)
	text, err := jsonx.CompositeKey("SELECT ?", "YWJj")
	require.NoError(t, err)

	assert.NotEqual(t, raw, text)
}

func TestCompositeKeyRejectsUnencodable(t *testing.T) {
	_, err := jsonx.CompositeKey(make(chan int))
	assert.Error(t, err)
}

func TestCompositeKeyWithoutValues(t *testing.T) {
	key, err := jsonx.CompositeKey()
	require.NoError(t, err)
	assert.Equal(t, `[]`, key)
}
