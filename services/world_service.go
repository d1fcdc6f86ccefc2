package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/laurheth/pumpkin-oubliette/content"
	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

var (
	ErrNoGame       = errors.New("no game for this session")
	ErrNotOnExit    = errors.New("you need to stand on the stairs to descend")
	ErrBadDirection = errors.New("invalid direction")
	ErrBadOption    = errors.New("no such travel option")
)

// WorldConfig holds the level and pacing settings of new games
type WorldConfig struct {
	Width     int
	Height    int
	Density   float64
	FOVRadius int
	ChunkSize int
	// StepDelay paces each step of an automated walk
	StepDelay time.Duration
	// Verbose logs a line per generated level
	Verbose bool

	RoomFlavours []dungeon.Flavour
	HallFlavours []dungeon.Flavour
}

// DefaultWorldConfig is used when nothing else is configured
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:     40,
		Height:    40,
		Density:   0.75,
		FOVRadius: dungeon.DefaultFOVRadius,
		ChunkSize: 16,
		StepDelay: 60 * time.Millisecond,
	}
}

// Game is one session's run through the dungeon
type Game struct {
	SessionID string
	RunID     int64
	Seed      int64
	Level     int

	Player   *models.Player
	Dungeon  *dungeon.Dungeon
	Registry *Registry
	Turns    *TurnMachine
	Messages []string

	rng     *random.Rand
	spawner *content.Spawner
	options []dungeon.TravelOption
	inView  map[string]bool
}

func (g *Game) say(format string, args ...any) {
	g.Messages = append(g.Messages, fmt.Sprintf(format, args...))
}

// WorldService runs one game per session
type WorldService struct {
	config     WorldConfig
	chunks     *ChunkManager
	games      map[string]*Game
	worldMutex sync.RWMutex
}

// NewWorldService creates a new world service
func NewWorldService(config WorldConfig) *WorldService {
	return &WorldService{
		config: config,
		chunks: NewChunkManager(config.ChunkSize),
		games:  make(map[string]*Game),
	}
}

// NewGame starts a fresh run on level one, replacing any game the session had
func (ws *WorldService) NewGame(sessionID string, seed int64) (*Game, error) {
	g := &Game{
		SessionID: sessionID,
		Seed:      seed,
		Player:    models.NewPlayer("player_" + sessionID),
		Registry:  NewRegistry(),
		Turns:     NewTurnMachine(),
		rng:       random.New(seed),
		spawner:   content.NewSpawner(),
	}
	if err := ws.buildLevel(g, 1); err != nil {
		return nil, err
	}
	g.say("You enter the pumpkin oubliette.")

	ws.worldMutex.Lock()
	ws.games[sessionID] = g
	ws.worldMutex.Unlock()
	ws.chunks.Reset(sessionID)
	return g, nil
}

// levelSeed derives the seed of a level from the run seed
func levelSeed(seed int64, level int) int64 {
	return seed*1_000_003 + int64(level)
}

// buildLevel generates the given level around the player. The game keeps its
// current level if generation fails.
func (ws *WorldService) buildLevel(g *Game, level int) error {
	g.spawner.Names.Clear()

	params := dungeon.Params{
		Width:      ws.config.Width,
		Height:     ws.config.Height,
		Density:    ws.config.Density,
		Level:      level,
		Aggression: g.Player.Aggression,
		FOVRadius:  ws.config.FOVRadius,
		Player:     g.Player,
		Populator:  g.spawner,

		RoomFlavours: ws.config.RoomFlavours,
		HallFlavours: ws.config.HallFlavours,
	}
	if ws.config.Verbose {
		params.Logf = log.Printf
	}
	d, err := dungeon.Generate(params, random.New(levelSeed(g.Seed, level)))
	if err != nil {
		return fmt.Errorf("failed to generate level %d: %w", level, err)
	}
	g.Registry.ClearExcept(g.Player.ID)
	g.Registry.Add(g.Player)
	for _, occ := range d.Populated() {
		g.Registry.Add(occ)
	}

	g.Dungeon = d
	g.Level = level
	g.options = nil
	if level > g.Player.Deepest {
		g.Player.Deepest = level
	}
	g.Turns.Interrupt()
	d.Look(g.Player.GetPosition())
	g.inView = hostilesInView(g)
	return nil
}

// Game returns the session's game
func (ws *WorldService) Game(sessionID string) (*Game, error) {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	g, exists := ws.games[sessionID]
	if !exists {
		return nil, ErrNoGame
	}
	return g, nil
}

// EndGame forgets a session's game
func (ws *WorldService) EndGame(sessionID string) {
	ws.worldMutex.Lock()
	delete(ws.games, sessionID)
	ws.worldMutex.Unlock()
	ws.chunks.Reset(sessionID)
}

// ResetView makes the next snapshot of the session carry every chunk
func (ws *WorldService) ResetView(sessionID string) {
	ws.chunks.Reset(sessionID)
}

func (ws *WorldService) withGame(sessionID string, fn func(g *Game) error) error {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	g, exists := ws.games[sessionID]
	if !exists {
		return ErrNoGame
	}
	if g.Turns.State() == Done {
		return ErrGameOver
	}
	return fn(g)
}

// Descend takes the player down the stairs to a new level
func (ws *WorldService) Descend(sessionID string) (*Game, error) {
	var game *Game
	err := ws.withGame(sessionID, func(g *Game) error {
		if g.Player.GetPosition() != g.Dungeon.Exit {
			return ErrNotOnExit
		}
		if err := ws.buildLevel(g, g.Level+1); err != nil {
			return err
		}
		g.say("You descend to level %d.", g.Level)
		game = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	ws.chunks.Reset(sessionID)
	return game, nil
}

var directions = map[string]models.Position{
	"north":     {X: 0, Y: -1},
	"south":     {X: 0, Y: 1},
	"east":      {X: 1, Y: 0},
	"west":      {X: -1, Y: 0},
	"northeast": {X: 1, Y: -1},
	"northwest": {X: -1, Y: -1},
	"southeast": {X: 1, Y: 1},
	"southwest": {X: -1, Y: 1},
}

// Move walks the player one step, or bumps into whoever is in the way
func (ws *WorldService) Move(sessionID string, direction string) error {
	delta, ok := directions[direction]
	if !ok {
		return ErrBadDirection
	}
	return ws.withGame(sessionID, func(g *Game) error {
		g.Turns.Interrupt()
		target := g.Player.GetPosition().Add(delta.X, delta.Y)
		if err := ws.playerStep(g, target); err != nil {
			return err
		}
		ws.endTurn(g)
		return nil
	})
}

// playerStep moves the player into target, interacting with an occupant there
func (ws *WorldService) playerStep(g *Game, target models.Position) error {
	d := g.Dungeon
	cell := d.Cell(target.X, target.Y)
	if cell != nil && cell.Occupant() != nil && cell.Occupant() != models.Occupant(g.Player) {
		ws.interact(g, cell.Occupant())
		return nil
	}
	if err := d.MoveOccupant(g.Player, target); err != nil {
		return fmt.Errorf("cannot move there: %w", err)
	}
	g.options = nil
	return nil
}

// endTurn lets everything else act and refreshes what the player sees
func (ws *WorldService) endTurn(g *Game) (spotted bool) {
	g.Dungeon.Look(g.Player.GetPosition())
	spotted = ws.actMonsters(g)
	g.Dungeon.Look(g.Player.GetPosition())
	if g.Player.HP <= 0 {
		g.say("You have been defeated on level %d.", g.Level)
		g.Turns.Finish()
	}
	return spotted
}

// TravelOptions lists where the player can travel from where they stand
func (ws *WorldService) TravelOptions(sessionID string) ([]dungeon.TravelOption, error) {
	var options []dungeon.TravelOption
	err := ws.withGame(sessionID, func(g *Game) error {
		g.options = g.Dungeon.TravelOptions(g.Player.GetPosition())
		options = g.options
		return nil
	})
	return options, err
}

// Travel walks the player along a travel option, one paced step per turn, until
// the destination is reached or a hostile monster comes into view. onStep is
// called after every step.
func (ws *WorldService) Travel(ctx context.Context, sessionID string, index int, onStep func(g *Game)) (int, error) {
	err := ws.withGame(sessionID, func(g *Game) error {
		if g.options == nil {
			g.options = g.Dungeon.TravelOptions(g.Player.GetPosition())
		}
		if index < 0 || index >= len(g.options) {
			return ErrBadOption
		}
		return g.Turns.Resume(g.options[index].Path)
	})
	if err != nil {
		return 0, err
	}

	steps := 0
	for {
		done, err := ws.travelStep(sessionID)
		if err != nil {
			return steps, err
		}
		steps++
		if onStep != nil {
			if g, err := ws.Game(sessionID); err == nil {
				onStep(g)
			}
		}
		if done {
			return steps, nil
		}
		if err := ws.pause(ctx); err != nil {
			// ErrNoGame or ErrGameOver here leave no walk to interrupt
			_ = ws.withGame(sessionID, func(g *Game) error {
				g.Turns.Interrupt()
				return nil
			})
			return steps, err
		}
	}
}

func (ws *WorldService) pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ws.config.StepDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(ws.config.StepDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// travelStep takes one step of the current goal. It reports whether the walk is over.
func (ws *WorldService) travelStep(sessionID string) (bool, error) {
	var done bool
	err := ws.withGame(sessionID, func(g *Game) error {
		next, err := g.Turns.Step()
		if err != nil {
			return err
		}
		if occ := g.Registry.At(next); occ != nil && occ != models.Occupant(g.Player) {
			g.say("Something is in the way.")
			g.Turns.Interrupt()
			done = true
			return nil
		}
		if err := ws.playerStep(g, next); err != nil {
			g.Turns.Interrupt()
			return err
		}
		if ws.endTurn(g) {
			g.say("You stop.")
			g.Turns.Interrupt()
		}
		done = g.Turns.State() != ExecutingGoal
		return nil
	})
	return done, err
}

// Look describes what the player knows about a cell
func (ws *WorldService) Look(sessionID string, pos models.Position) (string, error) {
	var description string
	err := ws.withGame(sessionID, func(g *Game) error {
		cell := g.Dungeon.Cell(pos.X, pos.Y)
		if cell == nil || !cell.Seen {
			description = "You have not seen that place."
			return nil
		}
		if cell.Visible {
			switch occ := cell.Occupant().(type) {
			case *models.Player:
				description = "That's you."
				return nil
			case *models.Monster:
				description = fmt.Sprintf("%s the %s.", occ.Name, occ.Title)
				return nil
			case *models.Doodad:
				description = fmt.Sprintf("A %s. %s", occ.Name, occ.Description)
				return nil
			}
		}
		switch {
		case cell.Door == dungeon.DoorClosed:
			description = "A closed door."
		case cell.Door == dungeon.DoorOpen:
			description = "An open door."
		case !cell.Passable:
			description = "A wall."
		case g.Dungeon.NodeAt(pos) != nil:
			description = g.Dungeon.NodeAt(pos).Name()
		}
		if pos == g.Dungeon.Exit {
			description = "Stairs leading down."
		}
		return nil
	})
	return description, err
}

// Snapshot is everything a client needs to draw the game
type Snapshot struct {
	Level    int                    `json:"level"`
	Player   *models.Player         `json:"player"`
	Room     string                 `json:"room"`
	About    string                 `json:"about"`
	Width    int                    `json:"width"`
	Height   int                    `json:"height"`
	Chunks   []Chunk                `json:"chunks"`
	Options  []dungeon.TravelOption `json:"options"`
	Messages []string               `json:"messages"`
	OnExit   bool                   `json:"on_exit"`
	State    string                 `json:"state"`
}

// Snapshot describes the session's game and drains its pending messages. Only
// chunks that changed since the last snapshot are included.
func (ws *WorldService) Snapshot(sessionID string) (*Snapshot, error) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	g, exists := ws.games[sessionID]
	if !exists {
		return nil, ErrNoGame
	}
	pos := g.Player.GetPosition()
	// Copies, so the snapshot can be encoded while a walk moves the player on
	player := *g.Player
	snap := &Snapshot{
		Level:    g.Level,
		Player:   &player,
		Width:    g.Dungeon.Width(),
		Height:   g.Dungeon.Height(),
		Chunks:   ws.chunks.Dirty(sessionID, g.Dungeon.DrawableGrid()),
		Options:  slices.Clone(g.options),
		Messages: g.Messages,
		OnExit:   pos == g.Dungeon.Exit,
		State:    g.Turns.State().String(),
	}
	if node := g.Dungeon.NodeAt(pos); node != nil {
		snap.Room = node.Name()
		snap.About = node.Description()
	}
	g.Messages = nil
	return snap, nil
}
