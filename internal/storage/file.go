package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"stockdash/internal/model"
)

// FileStore keeps the holdings list as one JSON document on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the holdings file. A missing file is a fresh empty ledger.
func (s *FileStore) Load() ([]model.Holding, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Holding{}, nil
		}
		return nil, err
	}
	var holdings []model.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// Save writes the holdings list, creating parent directories as needed.
func (s *FileStore) Save(holdings []model.Holding) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}
