// Package persistence keeps the run ledger: which runs were played and the seed and
// shape of every level generated for them. Game state itself is never saved.
package persistence

import (
	"errors"

	"github.com/laurheth/pumpkin-oubliette/models"
)

var ErrNotFound = errors.New("record not found")

// Storage defines the interface for data persistence
type Storage interface {
	// SaveRun inserts a run, assigning its ID, or updates it when it already has one
	SaveRun(run *models.Run) error
	LoadRun(runID int64) (*models.Run, error)
	// SaveLevel inserts a level record, assigning its ID
	SaveLevel(level *models.LevelRecord) error
	// LoadLevels returns a run's levels in the order they were generated
	LoadLevels(runID int64) ([]*models.LevelRecord, error)
	Close() error
}
