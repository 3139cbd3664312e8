// Package osutil provides abstractions for OS-level operations to enable testing.
package osutil

import "os"

// Provider abstracts the OS lookups used while resolving configuration:
// the user config directory, directory creation and environment variables.
type Provider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	LookupEnv(key string) (string, bool)
}

// DefaultProvider uses real OS functions.
type DefaultProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// LookupEnv retrieves the value of the environment variable named by key.
func (DefaultProvider) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Current is the package-level provider instance.
// In production, this is DefaultProvider. Tests can replace it.
var Current Provider = DefaultProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p Provider) {
	Current = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Current = DefaultProvider{}
}

// MapEnv is an environment lookup backed by a map, for tests and for values
// read from .env files.
type MapEnv map[string]string

// LookupEnv returns the value stored under key.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
