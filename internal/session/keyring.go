package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

// Keyring entry names under the service namespace.
const (
	ServiceName     = "yoga-admin"
	KeyAccessToken  = "access-token"
	KeyRefreshToken = "refresh-token"
	KeyUser         = "user"
)

// KeyringStore persists the session in the OS keychain.
type KeyringStore struct{}

// NewKeyringStore creates a keychain-backed session store.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// Snapshot reads the three stored entries. Missing entries and a user record
// that fails to parse are treated as absent.
func (s *KeyringStore) Snapshot() Session {
	var snap Session

	if v, err := keyring.Get(ServiceName, KeyAccessToken); err == nil {
		snap.AccessToken = v
	}
	if v, err := keyring.Get(ServiceName, KeyRefreshToken); err == nil {
		snap.RefreshToken = v
	}
	if v, err := keyring.Get(ServiceName, KeyUser); err == nil {
		var u User
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			log.Debug().Err(err).Msg("stored user record is unparseable, treating as absent")
		} else {
			snap.User = &u
		}
	}

	return snap
}

// Persist writes only the fields present in the partial session.
func (s *KeyringStore) Persist(partial Session) error {
	if partial.AccessToken != "" {
		if err := keyring.Set(ServiceName, KeyAccessToken, partial.AccessToken); err != nil {
			return fmt.Errorf("failed to store access token: %w", err)
		}
	}
	if partial.RefreshToken != "" {
		if err := keyring.Set(ServiceName, KeyRefreshToken, partial.RefreshToken); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}
	if partial.User != nil {
		data, err := json.Marshal(partial.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		if err := keyring.Set(ServiceName, KeyUser, string(data)); err != nil {
			return fmt.Errorf("failed to store user: %w", err)
		}
	}
	return nil
}

// Clear removes all three entries. Entries that are already gone are fine.
func (s *KeyringStore) Clear() error {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := keyring.Delete(ServiceName, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to delete %s from keychain: %w", key, err)
		}
	}
	return nil
}
