package garmin

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Session is the reusable authentication state for a Garmin Connect account.
// The blob is opaque to callers; only the token is interpreted here.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// TokenStore abstracts persistence for the Garmin session blob.
type TokenStore interface {
	Load() (Session, error)
	Save(Session) error
}

// FileTokenStore writes the session blob to a JSON file on disk.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore builds a FileTokenStore rooted at the provided path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the location backing the store.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Load reads the session from disk. A missing file resolves to an empty
// session.
func (s *FileTokenStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read garmin session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("decode garmin session: %w", err)
	}
	return session, nil
}

// Save persists the session to disk with restricted permissions. A file lock
// guards against concurrent webhook invocations racing on the same store.
func (s *FileTokenStore) Save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure session directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock session file: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode garmin session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write garmin session: %w", err)
	}
	return nil
}
