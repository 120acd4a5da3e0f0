package cli

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	KeyFile   string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("GRIDLEDGER_SERVER", "http://localhost:8080"),
		KeyFile:   getEnvOrDefault("GRIDLEDGER_KEY_FILE", defaultKeyFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadKey loads the signing key from the key file. A missing file is not
// an error; commands that need to sign fail later with a clear message.
func (c *Config) LoadKey() (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(c.KeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("malformed key file %s: %w", c.KeyFile, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("key file %s: expected %d-byte seed", c.KeyFile, ed25519.SeedSize)
	}

	return ed25519.NewKeyFromSeed(seed), nil
}

// SaveKey writes the signing key's seed to the key file
func (c *Config) SaveKey(key ed25519.PrivateKey) error {
	dir := filepath.Dir(c.KeyFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	seed := hex.EncodeToString(key.Seed())
	return os.WriteFile(c.KeyFile, []byte(seed+"\n"), 0600)
}

func defaultKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gridledger/key"
	}
	return filepath.Join(home, ".gridledger", "key")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
