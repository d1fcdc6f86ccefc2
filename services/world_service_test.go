package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/models"
)

const testSeed = 20201031

func newTestWorld(t *testing.T) (*WorldService, *Game) {
	t.Helper()
	config := DefaultWorldConfig()
	config.StepDelay = 0
	ws := NewWorldService(config)
	g, err := ws.NewGame("s", testSeed)
	require.NoError(t, err)
	return ws, g
}

// freeNeighbour finds an empty passable cell next to the player
func freeNeighbour(t *testing.T, g *Game) (string, models.Position) {
	t.Helper()
	for _, name := range []string{"north", "east", "south", "west"} {
		pos := g.Player.GetPosition().Add(directions[name].X, directions[name].Y)
		cell := g.Dungeon.Cell(pos.X, pos.Y)
		if cell != nil && cell.Passable && cell.Occupant() == nil {
			return name, pos
		}
	}
	t.Fatal("player is boxed in")
	return "", models.Position{}
}

// clearMonsters leaves the level to the player and the doodads
func clearMonsters(g *Game) {
	for _, m := range g.Registry.Monsters() {
		g.Dungeon.Remove(m)
		g.Registry.Remove(m.ID)
	}
}

func TestNewGame(t *testing.T) {
	ws, g := newTestWorld(t)

	assert.Equal(t, 1, g.Level)
	assert.Equal(t, 1, g.Player.Deepest)
	assert.Equal(t, g.Dungeon.Entrance, g.Player.GetPosition())
	assert.Equal(t, AwaitingInput, g.Turns.State())
	assert.True(t, g.Dungeon.Visible(g.Player.GetPosition()))

	assert.Equal(t, len(g.Dungeon.Populated())+1, g.Registry.Len())
	got, ok := g.Registry.Get(g.Player.ID)
	require.True(t, ok)
	assert.Same(t, g.Player, got)

	same, err := ws.Game("s")
	require.NoError(t, err)
	assert.Same(t, g, same)

	_, err = ws.Game("nobody")
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestNewGameIsDeterministic(t *testing.T) {
	_, a := newTestWorld(t)
	_, b := newTestWorld(t)
	assert.Equal(t, a.Dungeon.DrawableGrid(), b.Dungeon.DrawableGrid())
	assert.Equal(t, a.Dungeon.Exit, b.Dungeon.Exit)
}

func TestMove(t *testing.T) {
	ws, g := newTestWorld(t)

	assert.ErrorIs(t, ws.Move("s", "up"), ErrBadDirection)
	assert.ErrorIs(t, ws.Move("nobody", "north"), ErrNoGame)

	name, target := freeNeighbour(t, g)
	require.NoError(t, ws.Move("s", name))
	assert.Equal(t, target, g.Player.GetPosition())
	assert.Same(t, g.Player, g.Dungeon.Cell(target.X, target.Y).Occupant())
}

func TestMoveIntoWall(t *testing.T) {
	ws, g := newTestWorld(t)
	clearMonsters(g)

	for _, name := range []string{"north", "east", "south", "west"} {
		delta := directions[name]
		start := g.Player.GetPosition()
		pos := start
		for {
			next := pos.Add(delta.X, delta.Y)
			cell := g.Dungeon.Cell(next.X, next.Y)
			if cell == nil || !cell.Passable || cell.Door != dungeon.DoorNone || cell.Occupant() != nil {
				break
			}
			pos = next
		}
		next := pos.Add(delta.X, delta.Y)
		if cell := g.Dungeon.Cell(next.X, next.Y); cell == nil || cell.Passable {
			continue
		}

		for g.Player.GetPosition() != pos {
			require.NoError(t, ws.Move("s", name))
		}
		err := ws.Move("s", name)
		assert.ErrorIs(t, err, dungeon.ErrBlocked)
		assert.Equal(t, pos, g.Player.GetPosition())
		return
	}
	t.Fatal("no straight walk from the entrance ends at a wall")
}

func TestLook(t *testing.T) {
	ws, g := newTestWorld(t)

	desc, err := ws.Look("s", g.Player.GetPosition())
	require.NoError(t, err)
	assert.Equal(t, "That's you.", desc)

	desc, err = ws.Look("s", models.Position{X: -1, Y: -1})
	require.NoError(t, err)
	assert.Equal(t, "You have not seen that place.", desc)
}

func TestDescend(t *testing.T) {
	ws, g := newTestWorld(t)

	_, err := ws.Descend("s")
	assert.ErrorIs(t, err, ErrNotOnExit)

	first := g.Dungeon
	require.NoError(t, g.Dungeon.MoveOccupant(g.Player, g.Dungeon.Exit))
	g.Dungeon.Look(g.Player.GetPosition())
	snap, err := ws.Snapshot("s")
	require.NoError(t, err)
	assert.True(t, snap.OnExit)

	desc, err := ws.Look("s", g.Dungeon.Exit)
	require.NoError(t, err)
	assert.Equal(t, "That's you.", desc)

	next, err := ws.Descend("s")
	require.NoError(t, err)
	assert.Same(t, g, next)
	assert.Equal(t, 2, g.Level)
	assert.Equal(t, 2, g.Player.Deepest)
	assert.NotSame(t, first, g.Dungeon)
	assert.Equal(t, g.Dungeon.Entrance, g.Player.GetPosition())
	assert.Equal(t, len(g.Dungeon.Populated())+1, g.Registry.Len(), "the old level's actors are gone")

	snap, err = ws.Snapshot("s")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Level)
	assert.Len(t, snap.Chunks, 9, "a new level is sent in full")
	assert.Contains(t, snap.Messages, "You descend to level 2.")
}

func TestSnapshot(t *testing.T) {
	ws, g := newTestWorld(t)

	snap, err := ws.Snapshot("s")
	require.NoError(t, err)
	assert.Equal(t, 40, snap.Width)
	assert.Equal(t, 40, snap.Height)
	assert.Len(t, snap.Chunks, 9)
	assert.Equal(t, []string{"You enter the pumpkin oubliette."}, snap.Messages)
	assert.Equal(t, "awaiting_input", snap.State)
	assert.Equal(t, g.Dungeon.EntranceRoom().Name(), snap.Room)
	assert.False(t, snap.OnExit)

	snap, err = ws.Snapshot("s")
	require.NoError(t, err)
	assert.Empty(t, snap.Chunks)
	assert.Empty(t, snap.Messages, "messages are drained")

	name, _ := freeNeighbour(t, g)
	require.NoError(t, ws.Move("s", name))
	snap, err = ws.Snapshot("s")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Chunks)

	ws.ResetView("s")
	snap, err = ws.Snapshot("s")
	require.NoError(t, err)
	assert.Len(t, snap.Chunks, 9, "a reset view is sent in full")
}

func TestSnapshotWhileTravelling(t *testing.T) {
	ws, g := newTestWorld(t)
	clearMonsters(g)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for round := 0; round < 20; round++ {
			options, err := ws.TravelOptions("s")
			if err != nil || len(options) == 0 {
				return
			}
			_, _ = ws.Travel(context.Background(), "s", round%len(options), nil)
		}
	}()

	for walking := true; walking; {
		select {
		case <-done:
			walking = false
		default:
		}
		snap, err := ws.Snapshot("s")
		require.NoError(t, err)
		assert.NotSame(t, g.Player, snap.Player)
		_, err = json.Marshal(snap)
		require.NoError(t, err)
	}
}

func TestTravel(t *testing.T) {
	ws, g := newTestWorld(t)
	clearMonsters(g)

	options, err := ws.TravelOptions("s")
	require.NoError(t, err)
	require.NotEmpty(t, options)

	_, err = ws.Travel(context.Background(), "s", len(options), nil)
	assert.ErrorIs(t, err, ErrBadOption)

	calls := 0
	steps, err := ws.Travel(context.Background(), "s", 0, func(*Game) { calls++ })
	require.NoError(t, err)
	assert.Positive(t, steps)
	assert.Equal(t, steps, calls)
	assert.LessOrEqual(t, steps, len(options[0].Path))
	assert.Equal(t, AwaitingInput, g.Turns.State())
	if steps == len(options[0].Path) {
		assert.Equal(t, options[0].Target, g.Player.GetPosition())
	}
}

func TestTravelCancelled(t *testing.T) {
	ws, g := newTestWorld(t)
	clearMonsters(g)

	options, err := ws.TravelOptions("s")
	require.NoError(t, err)
	long := -1
	for i, opt := range options {
		if len(opt.Path) > 1 {
			long = i
			break
		}
	}
	require.NotEqual(t, -1, long)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	steps, err := ws.Travel(ctx, "s", long, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, steps)
	assert.Equal(t, options[long].Path[0], g.Player.GetPosition())
	assert.Equal(t, AwaitingInput, g.Turns.State())
}

func TestGameOver(t *testing.T) {
	ws, g := newTestWorld(t)

	g.Player.HP = 0
	name, _ := freeNeighbour(t, g)
	require.NoError(t, ws.Move("s", name))
	assert.Equal(t, Done, g.Turns.State())

	assert.ErrorIs(t, ws.Move("s", name), ErrGameOver)
	_, err := ws.TravelOptions("s")
	assert.ErrorIs(t, err, ErrGameOver)

	ws.EndGame("s")
	_, err = ws.Game("s")
	assert.ErrorIs(t, err, ErrNoGame)
}
