package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laurheth/pumpkin-oubliette/persistence"
)

func newTestPlayers(t *testing.T) (*PlayerService, *WorldService, persistence.Storage) {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)
	config := DefaultWorldConfig()
	config.StepDelay = 0
	world := NewWorldService(config)
	return NewPlayerService(world, store), world, store
}

func TestStartRunRecordsFirstLevel(t *testing.T) {
	ps, _, store := newTestPlayers(t)

	g, err := ps.StartRun("s", testSeed)
	require.NoError(t, err)
	require.NotZero(t, g.RunID)

	run, ok := ps.Run("s")
	require.True(t, ok)
	assert.Equal(t, g.RunID, run.ID)

	saved, err := store.LoadRun(g.RunID)
	require.NoError(t, err)
	assert.Equal(t, "s", saved.SessionID)
	assert.Equal(t, int64(testSeed), saved.Seed)
	assert.Equal(t, 1, saved.Deepest)

	levels, err := ps.History("s")
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, 1, levels[0].Level)
	assert.Equal(t, g.Dungeon.Exit, levels[0].Exit)
	assert.Equal(t, len(g.Dungeon.Rooms()), levels[0].Rooms)
}

func TestDescendRecordsLevel(t *testing.T) {
	ps, _, store := newTestPlayers(t)

	g, err := ps.StartRun("s", testSeed)
	require.NoError(t, err)
	before, ok := ps.Run("s")
	require.True(t, ok)

	_, err = ps.Descend("s")
	assert.ErrorIs(t, err, ErrNotOnExit)

	require.NoError(t, g.Dungeon.MoveOccupant(g.Player, g.Dungeon.Exit))
	_, err = ps.Descend("s")
	require.NoError(t, err)

	assert.Equal(t, 1, before.Deepest, "handed out runs are copies")
	after, ok := ps.Run("s")
	require.True(t, ok)
	assert.Equal(t, 2, after.Deepest)
	assert.NotSame(t, before, after)

	saved, err := store.LoadRun(g.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Deepest)

	levels, err := ps.History("s")
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, 2, levels[1].Level)
	assert.Equal(t, g.Dungeon.Seed, levels[1].Seed)
}

func TestEndRun(t *testing.T) {
	ps, world, _ := newTestPlayers(t)

	_, err := ps.StartRun("s", 1)
	require.NoError(t, err)
	ps.EndRun("s")

	_, ok := ps.Run("s")
	assert.False(t, ok)
	_, err = world.Game("s")
	assert.ErrorIs(t, err, ErrNoGame)
	_, err = ps.History("s")
	assert.ErrorIs(t, err, ErrNoGame)
}
