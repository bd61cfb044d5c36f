// Package file stores credentials in a YAML file under the user's config directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// FileName is the credentials file inside the store directory.
const FileName = "credentials.yaml"

// Store is a domain.CredentialStore over a single YAML map. Writes go through a
// temp file and rename; the file is readable by the owner only.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ domain.CredentialStore = (*Store)(nil)

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string) *Store { return &Store{dir: dir} }

// Path returns the credentials file path.
func (s *Store) Path() string { return filepath.Join(s.dir, FileName) }

// Load reads key from the file. A missing file means no credential.
func (s *Store) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Save writes key, keeping other entries.
func (s *Store) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return err
	}
	m[key] = value
	return s.write(m)
}

// Clear removes key. Missing keys and files are not an error.
func (s *Store) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.write(m)
}

// Ping checks that the directory is usable.
func (s *Store) Ping(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("op=file.ping: %w", err)
	}
	return nil
}

func (s *Store) read() (map[string]string, error) {
	m := map[string]string{}
	b, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("op=file.read: %w", err)
	}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("op=file.read: %w", err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (s *Store) write(m map[string]string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("op=file.write: %w", err)
	}
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("op=file.write: %w", err)
	}
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("op=file.write: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("op=file.write: %w", err)
	}
	return nil
}
