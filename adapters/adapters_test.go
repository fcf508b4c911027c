package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAdapterAliases(t *testing.T) {
	mux := new(Mux)

	for _, alias := range []string{"mysql", "postgres", "postgresql", "pg", "sqlserver", "mssql"} {
		adapter, err := mux.GetAdapter(alias)
		require.NoError(t, err, alias)
		assert.NotNil(t, adapter, alias)
	}
}

func TestGetAdapterUnknownAlias(t *testing.T) {
	_, err := new(Mux).GetAdapter("mongo")
	assert.ErrorIs(t, err, ErrUnsupportedTypeAlias)
}

func TestConnectUnknownAlias(t *testing.T) {
	_, err := Connect("not-a-database", "whatever://")
	assert.ErrorIs(t, err, ErrUnsupportedTypeAlias)
}
