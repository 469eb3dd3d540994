package whatsapp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TokenStore persists the opaque session token under the data dir so a
// restart resumes straight to ready without re-pairing.
type TokenStore struct {
	path string
}

// NewTokenStore creates a TokenStore rooted at dataDir.
func NewTokenStore(dataDir string) *TokenStore {
	return &TokenStore{path: filepath.Join(dataDir, "session.token")}
}

// Load returns the stored token, or "" when none has been saved yet.
func (t *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("whatsapp: reading session token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the data dir as needed.
func (t *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("whatsapp: creating data dir: %w", err)
	}
	if err := os.WriteFile(t.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("whatsapp: writing session token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Missing is not an error.
func (t *TokenStore) Clear() error {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("whatsapp: removing session token: %w", err)
	}
	return nil
}

// Pair drives the session through the pairing handshake. With a stored
// token the handshake resumes silently; otherwise a fresh challenge is
// issued and persisted so the next restart skips straight to ready.
func Pair(s *Session, tokens *TokenStore) error {
	token, err := tokens.Load()
	if err != nil {
		return err
	}
	fresh := token == ""
	if fresh {
		token = uuid.NewString()
	}
	if err := s.BeginPairing(token); err != nil {
		return err
	}
	if fresh {
		if err := tokens.Save(token); err != nil {
			_ = s.MarkFailed(err.Error())
			return err
		}
	}
	return s.MarkReady()
}
