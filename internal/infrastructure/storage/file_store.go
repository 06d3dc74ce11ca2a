package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/you/termbridge/domain"
)

// FileStore keeps the bearer token in a single file. It is the durable
// default for the CLI, playing the role browser local storage played for
// the web client.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store at path
func NewFileStore(path string) domain.TokenStore {
	return &FileStore{path: path}
}

// Get implements domain.TokenStore
func (s *FileStore) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set implements domain.TokenStore
func (s *FileStore) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Remove implements domain.TokenStore
func (s *FileStore) Remove(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
