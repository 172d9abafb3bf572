package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// fileFormat is the on-disk layout. The user field stays raw so a corrupted
// user record degrades to "absent" without losing the tokens next to it.
type fileFormat struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

// FileStore persists the session as a JSON file with atomic writes. It is
// the fallback backend for hosts without a usable OS keychain, and the only
// backend that supports change watching.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed session store at path. An empty path
// defaults to ~/.yoga-admin/session.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".yoga-admin", "session.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &FileStore{path: path}, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Snapshot reads the stored session. A missing or unparseable file yields an
// empty session; an unparseable user record yields a session without a user.
func (s *FileStore) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("session file is unparseable, treating as empty")
		return Session{}
	}

	snap := Session{AccessToken: f.AccessToken, RefreshToken: f.RefreshToken}
	if len(f.User) > 0 {
		var u User
		if err := json.Unmarshal(f.User, &u); err != nil {
			log.Debug().Err(err).Msg("stored user record is unparseable, treating as absent")
		} else {
			snap.User = &u
		}
	}
	return snap
}

// Persist merges the partial session over what is stored and writes the
// result atomically. Absent fields are left untouched.
func (s *FileStore) Persist(partial Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := merge(s.read(), partial)

	f := fileFormat{
		AccessToken:  merged.AccessToken,
		RefreshToken: merged.RefreshToken,
	}
	if merged.User != nil {
		data, err := json.Marshal(merged.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		f.User = data
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Watch polls the backing file and invokes fn with a fresh snapshot whenever
// another process changed it. Writers race last-write-wins at the file
// layer; watchers re-read rather than trust their cache, so a brief
// inconsistency self-heals on the next change. Watch blocks until ctx is
// done.
func (s *FileStore) Watch(ctx context.Context, interval time.Duration, fn func(Session)) {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	last := s.fingerprint()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := s.fingerprint()
			if !bytes.Equal(cur, last) {
				last = cur
				log.Debug().Str("path", s.path).Msg("session file changed externally")
				fn(s.Snapshot())
			}
		}
	}
}

// fingerprint returns the raw file content, or nil when absent. Content
// comparison beats mtime here: coarse filesystem clocks miss rapid writes.
func (s *FileStore) fingerprint() []byte {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	return data
}
