//go:build darwin

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDarwinKeyring_EnvOverridesKeychain(t *testing.T) {
	t.Setenv(EnvKey, "from-env")

	key, err := NewKeyring().GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestDarwinKeyring_SetKeyRejectsEmpty(t *testing.T) {
	assert.Error(t, NewKeyring().SetKey(""))
}
