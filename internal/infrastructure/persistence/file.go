// internal/infrastructure/persistence/file.go
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/your-org/storefront-session/internal/domain/session"
)

// FileRepository persists a session snapshot as a JSON file. Intended for
// development without Redis; the write is atomic via rename.
type FileRepository struct {
	path string
}

// NewFileRepository creates a file-backed snapshot repository for one session
func NewFileRepository(dir, sessionID string) *FileRepository {
	return &FileRepository{
		path: filepath.Join(dir, sessionID+".json"),
	}
}

// Load reads the persisted snapshot, nil when none exists
func (r *FileRepository) Load(ctx context.Context) (*session.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

// Save writes the snapshot to disk
func (r *FileRepository) Save(ctx context.Context, snap *session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
