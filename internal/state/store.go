package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// Store keeps the last-known up/down snapshot between runs.
type Store interface {
	Load() domain.Snapshot
	Save(domain.Snapshot)
}

// FileStore persists the snapshot as indented JSON at a fixed path. Both
// operations are best-effort: a missing or corrupt file loads as an empty
// snapshot, and a failed save leaves the previous file in place with a
// warning. Neither failure mode is allowed to abort a run.
type FileStore struct {
	Path   string
	Logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{Path: path, Logger: logger}
}

func (s *FileStore) Load() domain.Snapshot {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Logger.Warn("state_read_failed", zap.String("path", s.Path), zap.Error(err))
		}
		return domain.Snapshot{}
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		s.Logger.Warn("state_parse_failed", zap.String("path", s.Path), zap.Error(err))
		return domain.Snapshot{}
	}
	if snap == nil {
		snap = domain.Snapshot{}
	}
	return snap
}

func (s *FileStore) Save(snap domain.Snapshot) {
	if dir := filepath.Dir(s.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.Logger.Warn("state_mkdir_failed", zap.String("path", s.Path), zap.Error(err))
			return
		}
	}
	// MarshalIndent keeps the file human-readable; map keys marshal sorted,
	// so the output is stable across runs.
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.Logger.Warn("state_marshal_failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.Path, append(b, '\n'), 0o644); err != nil {
		s.Logger.Warn("state_write_failed", zap.String("path", s.Path), zap.Error(err))
	}
}
