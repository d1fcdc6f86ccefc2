package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/laurheth/pumpkin-oubliette/models"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/russross/meddler"
)

func init() {
	meddler.Default = meddler.PostgreSQL
}

// PostgresStore handles database operations using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// levelRow is how a level record is laid out in the level_records table
type levelRow struct {
	ID        int64     `meddler:"id,pk"`
	RunID     int64     `meddler:"run_id"`
	Level     int       `meddler:"level"`
	Seed      int64     `meddler:"seed"`
	Width     int       `meddler:"width"`
	Height    int       `meddler:"height"`
	Density   float64   `meddler:"density"`
	Rooms     int       `meddler:"rooms"`
	Hallways  int       `meddler:"hallways"`
	EntranceX int       `meddler:"entrance_x"`
	EntranceY int       `meddler:"entrance_y"`
	ExitX     int       `meddler:"exit_x"`
	ExitY     int       `meddler:"exit_y"`
	CreatedAt time.Time `meddler:"created_at"`
}

func toLevelRow(l *models.LevelRecord) *levelRow {
	return &levelRow{
		ID: l.ID, RunID: l.RunID, Level: l.Level, Seed: l.Seed,
		Width: l.Width, Height: l.Height, Density: l.Density,
		Rooms: l.Rooms, Hallways: l.Hallways,
		EntranceX: l.Entrance.X, EntranceY: l.Entrance.Y,
		ExitX: l.Exit.X, ExitY: l.Exit.Y,
		CreatedAt: l.CreatedAt,
	}
}

func (r *levelRow) record() *models.LevelRecord {
	return &models.LevelRecord{
		ID: r.ID, RunID: r.RunID, Level: r.Level, Seed: r.Seed,
		Width: r.Width, Height: r.Height, Density: r.Density,
		Rooms: r.Rooms, Hallways: r.Hallways,
		Entrance:  models.Position{X: r.EntranceX, Y: r.EntranceY},
		Exit:      models.Position{X: r.ExitX, Y: r.ExitY},
		CreatedAt: r.CreatedAt,
	}
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (dm *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		seed BIGINT NOT NULL,
		deepest INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS level_records (
		id BIGSERIAL PRIMARY KEY,
		run_id BIGINT REFERENCES runs(id),
		level INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		density DOUBLE PRECISION NOT NULL,
		rooms INTEGER NOT NULL,
		hallways INTEGER NOT NULL,
		entrance_x INTEGER NOT NULL,
		entrance_y INTEGER NOT NULL,
		exit_x INTEGER NOT NULL,
		exit_y INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS level_records_run_id ON level_records (run_id);
	`

	_, err := dm.db.Exec(schema)
	return err
}

// SaveRun inserts or updates a run
func (dm *PostgresStore) SaveRun(run *models.Run) error {
	if err := meddler.Save(dm.db, "runs", run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun loads a run from the database by ID
func (dm *PostgresStore) LoadRun(runID int64) (*models.Run, error) {
	run := new(models.Run)
	if err := meddler.Load(dm.db, "runs", run, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return run, nil
}

// SaveLevel inserts a level record
func (dm *PostgresStore) SaveLevel(level *models.LevelRecord) error {
	row := toLevelRow(level)
	row.ID = 0
	if err := meddler.Insert(dm.db, "level_records", row); err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	level.ID = row.ID
	return nil
}

// LoadLevels loads every level of a run in generation order
func (dm *PostgresStore) LoadLevels(runID int64) ([]*models.LevelRecord, error) {
	var rows []*levelRow
	err := meddler.QueryAll(dm.db, &rows, `SELECT * FROM level_records WHERE run_id = $1 ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	levels := make([]*models.LevelRecord, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, row.record())
	}
	return levels, nil
}

// Close closes the database connection
func (dm *PostgresStore) Close() error {
	return dm.db.Close()
}
