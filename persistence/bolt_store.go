package persistence

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/laurheth/pumpkin-oubliette/models"
)

var (
	runsBucket   = []byte("runs")
	levelsBucket = []byte("levels")
)

// BoltStore keeps the ledger in a single bbolt file. Levels live in one nested
// bucket per run so they come back in insertion order.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens or creates the database file
func NewBoltStore(filePath string) (*BoltStore, error) {
	db, err := bolt.Open(filePath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{runsBucket, levelsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// SaveRun stores a run, taking the next sequence number as its ID when it has none
func (bs *BoltStore) SaveRun(run *models.Run) error {
	err := bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runsBucket)
		if run.ID == 0 {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			run.ID = int64(seq)
		}
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return b.Put(itob(run.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun loads a run by ID
func (bs *BoltStore) LoadRun(runID int64) (*models.Run, error) {
	var run *models.Run
	err := bs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(runsBucket).Get(itob(runID))
		if data == nil {
			return fmt.Errorf("run %d: %w", runID, ErrNotFound)
		}
		run = new(models.Run)
		return json.Unmarshal(data, run)
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// SaveLevel stores a level record under its run
func (bs *BoltStore) SaveLevel(level *models.LevelRecord) error {
	err := bs.db.Update(func(tx *bolt.Tx) error {
		levels := tx.Bucket(levelsBucket)
		seq, err := levels.NextSequence()
		if err != nil {
			return err
		}
		level.ID = int64(seq)

		b, err := levels.CreateBucketIfNotExists(itob(level.RunID))
		if err != nil {
			return err
		}
		data, err := json.Marshal(level)
		if err != nil {
			return err
		}
		return b.Put(itob(level.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	return nil
}

// LoadLevels loads every level of a run
func (bs *BoltStore) LoadLevels(runID int64) ([]*models.LevelRecord, error) {
	var levels []*models.LevelRecord
	err := bs.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(levelsBucket).Bucket(itob(runID))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, data []byte) error {
			level := new(models.LevelRecord)
			if err := json.Unmarshal(data, level); err != nil {
				return err
			}
			levels = append(levels, level)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	return levels, nil
}

// Close closes the database file
func (bs *BoltStore) Close() error {
	return bs.db.Close()
}
