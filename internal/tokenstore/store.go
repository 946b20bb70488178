// Package tokenstore persists the session's token pair between runs,
// the desktop analogue of the browser storage the console relies on.
package tokenstore

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/klasora/console-go/internal/models"
)

// ErrNoTokens indicates no saved credentials exist.
var ErrNoTokens = errors.New("no saved tokens")

// Saved is the durable snapshot of the session credentials.
type Saved struct {
	Tokens   models.TokenPair `json:"tokens"`
	TenantID string           `json:"tenant_id,omitempty"`
	SavedAt  time.Time        `json:"saved_at"`
}

// Store abstracts durable token retention.
type Store interface {
	Load() (*Saved, error)
	Save(*Saved) error
	Clear() error
}

// File keeps tokens in a mode-0600 JSON file.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile builds a file-backed store at path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() (*Saved, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTokens
		}
		return nil, err
	}

	saved := &Saved{}
	if err := json.Unmarshal(data, saved); err != nil {
		return nil, err
	}
	if saved.Tokens.AccessToken == "" && saved.Tokens.RefreshToken == "" {
		return nil, ErrNoTokens
	}
	return saved, nil
}

func (f *File) Save(saved *Saved) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Memory is an in-process store used by tests and the demo fixture path.
type Memory struct {
	mu    sync.Mutex
	saved *Saved
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (*Saved, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saved == nil {
		return nil, ErrNoTokens
	}
	copied := *m.saved
	return &copied, nil
}

func (m *Memory) Save(saved *Saved) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}
	copied := *saved
	m.saved = &copied
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = nil
	return nil
}
