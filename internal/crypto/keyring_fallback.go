//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

// GetKey reads the key from $KANAKKU_DB_KEY (possibly loaded from a .env file)
func (k *fallbackKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}

	return key, nil
}

// SetKey cannot persist anything; it tells the user where the key goes
func (k *fallbackKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: add %s=<your password> to the environment or to a .env file", EnvKey)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) DeleteKey() error {
	return fmt.Errorf("keyring not available on this platform: unset %s manually", EnvKey)
}

// IsAvailable reports whether the key variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
