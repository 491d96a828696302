package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"medfollow-client/internal/repository/contract"
	"medfollow-client/internal/session"
)

type FilePreferenceRepository struct {
	mu   sync.Mutex
	path string
}

func NewFilePreferenceRepository(path string) contract.PreferenceRepository {
	return &FilePreferenceRepository{path: path}
}

func (r *FilePreferenceRepository) Load(_ context.Context) (session.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Preferences{}, nil
	}
	if err != nil {
		return session.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	var prefs session.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return session.Preferences{}, fmt.Errorf("decode preferences %s: %w", r.path, err)
	}
	return prefs, nil
}

// Save writes through a temp file so a crash never leaves a truncated file.
func (r *FilePreferenceRepository) Save(_ context.Context, prefs session.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
