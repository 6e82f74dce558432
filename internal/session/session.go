// Package session persists authenticated portal sessions so the agent can
// skip interactive login across runs. Sessions are segmented by audience key
// (the general queue and the filtered MNC queue hold independent sessions)
// and a present token is always trusted as-is: there is no TTL and no remote
// validation. A stale token surfaces later as a per-job failure, not here.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Segment keys for the two audience queues.
const (
	KeyGeneral = "general"
	KeyMNC     = "mnc"
)

// ErrNotFound is returned by Load when no session exists for a key.
var ErrNotFound = errors.New("session: no stored session for key")

// Cookie is one browser cookie captured at login time.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path,omitempty"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

// Token is the opaque set of authentication artifacts for one segment.
type Token struct {
	Cookies []Cookie `json:"cookies"`
}

// Store is a keyed session store.
type Store interface {
	// Load returns the stored token for key, or ErrNotFound.
	Load(key string) (*Token, error)
	Save(key string, token *Token) error
	Clear(key string) error
}

// FileStore keeps one JSON file per segment under a directory.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
// An empty dir means the current directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("naukrisession-%s.json", key))
}

// Load implements Store. Presence alone is sufficient; the token is never
// validated against the remote service.
func (s *FileStore) Load(key string) (*Token, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file for %s: %w", key, err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse session file for %s: %w", key, err)
	}
	return &token, nil
}

// Save implements Store.
func (s *FileStore) Save(key string, token *Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session for %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file for %s: %w", key, err)
	}
	return nil
}

// Clear implements Store. Clearing a key that was never saved is not an
// error.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file for %s: %w", key, err)
	}
	return nil
}

// LoginFunc performs an interactive login and returns the captured token.
type LoginFunc func(ctx context.Context) (*Token, error)

// Ensure returns the stored token for key, or runs login and persists its
// result. A login failure with no stored session is fatal to the run.
func Ensure(ctx context.Context, store Store, key string, login LoginFunc) (*Token, error) {
	token, err := store.Load(key)
	if err == nil {
		log.Printf("Session found for segment %q, reusing stored cookies", key)
		return token, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	log.Printf("No session for segment %q, attempting interactive login", key)
	token, err = login(ctx)
	if err != nil {
		return nil, fmt.Errorf("interactive login failed: %w", err)
	}
	if err := store.Save(key, token); err != nil {
		return nil, err
	}
	return token, nil
}
