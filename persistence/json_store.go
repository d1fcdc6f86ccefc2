package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// JSONStore handles data persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	NextRunID   int64                          `json:"next_run_id"`
	NextLevelID int64                          `json:"next_level_id"`
	Runs        map[string]*models.Run         `json:"runs"`
	Levels      map[string]*models.LevelRecord `json:"levels"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Runs:   make(map[string]*models.Run),
			Levels: make(map[string]*models.LevelRecord),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Runs == nil {
		js.data.Runs = make(map[string]*models.Run)
	}
	if js.data.Levels == nil {
		js.data.Levels = make(map[string]*models.LevelRecord)
	}
	return nil
}

// saveToFile saves data to the JSON file
func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveRun saves a run to the store
func (js *JSONStore) SaveRun(run *models.Run) error {
	js.mutex.Lock()
	if run.ID == 0 {
		js.data.NextRunID++
		run.ID = js.data.NextRunID
	}
	saved := *run
	js.data.Runs[key(run.ID)] = &saved
	js.mutex.Unlock()

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun loads a run by ID
func (js *JSONStore) LoadRun(runID int64) (*models.Run, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	run, exists := js.data.Runs[key(runID)]
	if !exists {
		return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
	}
	loaded := *run
	return &loaded, nil
}

// SaveLevel saves a level record to the store
func (js *JSONStore) SaveLevel(level *models.LevelRecord) error {
	js.mutex.Lock()
	js.data.NextLevelID++
	level.ID = js.data.NextLevelID
	saved := *level
	js.data.Levels[key(level.ID)] = &saved
	js.mutex.Unlock()

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	return nil
}

// LoadLevels loads every level of a run
func (js *JSONStore) LoadLevels(runID int64) ([]*models.LevelRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	var levels []*models.LevelRecord
	for _, level := range js.data.Levels {
		if level.RunID == runID {
			loaded := *level
			levels = append(levels, &loaded)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
