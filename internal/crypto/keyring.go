package crypto

// Keyring stores the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "kanakku"
	KeyName     = "db-encryption-key"
)

// EnvKey is read when no platform keyring is available
const EnvKey = "KANAKKU_DB_KEY"

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
