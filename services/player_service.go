package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/persistence"
)

// PlayerService ties sessions to runs and records every level they reach
type PlayerService struct {
	runs  map[string]*models.Run
	world *WorldService
	db    persistence.Storage
	mutex sync.RWMutex
}

// NewPlayerService creates a new player service
func NewPlayerService(world *WorldService, db persistence.Storage) *PlayerService {
	return &PlayerService{
		runs:  make(map[string]*models.Run),
		world: world,
		db:    db,
	}
}

// StartRun begins a new game for the session and records it
func (ps *PlayerService) StartRun(sessionID string, seed int64) (*Game, error) {
	game, err := ps.world.NewGame(sessionID, seed)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	run := &models.Run{
		SessionID: sessionID,
		Seed:      seed,
		Deepest:   game.Level,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ps.db.SaveRun(run); err != nil {
		return nil, fmt.Errorf("failed to save new run: %w", err)
	}
	game.RunID = run.ID
	if err := ps.recordLevel(game); err != nil {
		return nil, err
	}

	ps.mutex.Lock()
	ps.runs[sessionID] = run
	ps.mutex.Unlock()
	return game, nil
}

// Descend moves the session's player down a level and records the new level
func (ps *PlayerService) Descend(sessionID string) (*Game, error) {
	game, err := ps.world.Descend(sessionID)
	if err != nil {
		return nil, err
	}

	ps.mutex.Lock()
	run, exists := ps.runs[sessionID]
	if !exists {
		ps.mutex.Unlock()
		return game, nil
	}
	run.Deepest = game.Player.Deepest
	run.UpdatedAt = time.Now()
	saved := *run
	ps.mutex.Unlock()

	if err := ps.db.SaveRun(&saved); err != nil {
		return nil, fmt.Errorf("failed to update run: %w", err)
	}
	return game, ps.recordLevel(game)
}

func (ps *PlayerService) recordLevel(game *Game) error {
	record := game.Dungeon.Summary()
	record.RunID = game.RunID
	if err := ps.db.SaveLevel(&record); err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	return nil
}

// Run returns a copy of the session's current run
func (ps *PlayerService) Run(sessionID string) (*models.Run, bool) {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()

	run, exists := ps.runs[sessionID]
	if !exists {
		return nil, false
	}
	copied := *run
	return &copied, true
}

// History lists the levels recorded for the session's run
func (ps *PlayerService) History(sessionID string) ([]*models.LevelRecord, error) {
	run, exists := ps.Run(sessionID)
	if !exists {
		return nil, ErrNoGame
	}
	return ps.db.LoadLevels(run.ID)
}

// EndRun forgets the session's game
func (ps *PlayerService) EndRun(sessionID string) {
	ps.mutex.Lock()
	delete(ps.runs, sessionID)
	ps.mutex.Unlock()
	ps.world.EndGame(sessionID)
}
