package storage

import "stockdash/internal/model"

// Store persists the full holdings list. The ledger reads once at
// startup and writes the whole list back after every mutation.
type Store interface {
	Load() ([]model.Holding, error)
	Save(holdings []model.Holding) error
}
