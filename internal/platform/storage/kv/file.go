package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type fileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFile crea un store con un archivo JSON por key bajo dir.
// Sin escritura parcial: cada Set reemplaza el archivo completo.
func NewFile(dir string) (Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("kv: dir required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("kv: mkdir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv: read %q: %w", key, err)
	}
	return string(b), true, nil
}

func (s *fileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// write + rename para no dejar un archivo a medias si se corta
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("kv: rename %q: %w", key, err)
	}
	return nil
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("kv: delete %q: %w", key, err)
	}
	return nil
}

func (s *fileStore) path(key string) string {
	// keys tipo "auth/token" no deben escapar del dir
	name := strings.ReplaceAll(key, "/", "__")
	name = strings.ReplaceAll(name, string(filepath.Separator), "__")
	return filepath.Join(s.dir, name+".json")
}
