// Package secrets stores LLM API keys in the OS keychain.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups jobscout's secrets in the OS keychain.
const KeyringService = "jobscout"

// ErrNotFound is returned when no key is stored for a provider.
var ErrNotFound = errors.New("api key not found in keychain")

// Account returns the keychain account name for an LLM provider.
func Account(provider string) string {
	return fmt.Sprintf("jobscout:ai:%s", strings.ToLower(strings.TrimSpace(provider)))
}

// GetAPIKey returns the stored key for provider.
func GetAPIKey(provider string) (string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", errors.New("provider name is empty")
	}
	key, err := keyring.Get(KeyringService, Account(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading keychain: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", ErrNotFound
	}
	return key, nil
}

// SetAPIKey stores key for provider, replacing any previous value.
func SetAPIKey(provider, key string) error {
	if strings.TrimSpace(provider) == "" {
		return errors.New("provider name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, Account(provider), strings.TrimSpace(key))
}

// DeleteAPIKey removes the stored key for provider.
func DeleteAPIKey(provider string) error {
	if strings.TrimSpace(provider) == "" {
		return errors.New("provider name is empty")
	}
	err := keyring.Delete(KeyringService, Account(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
