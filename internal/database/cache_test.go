package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without a cache client the builder degrades to a passthrough: reads
// miss, deletes succeed, writes report the missing client.
func TestCacheBuilder_NilClient(t *testing.T) {
	builder := NewCacheBuilder(nil, "cases:some-id")

	var dest map[string]string
	found, err := builder.Get(&dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, builder.Delete())

	err = builder.WithStruct(map[string]string{"a": "b"}).Set()
	assert.ErrorIs(t, err, ErrNilCacheClient)
}
