package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "kanakku.db"), "test&key")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations())
	// second run is a no-op
	require.NoError(t, database.RunMigrations())

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range Tables() {
		var n int
		err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		require.NoError(t, err, table)
		assert.Zero(t, n, table)
	}
}
