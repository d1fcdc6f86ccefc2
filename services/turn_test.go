package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laurheth/pumpkin-oubliette/models"
)

func TestTurnMachineWalksGoal(t *testing.T) {
	tm := NewTurnMachine()
	assert.Equal(t, AwaitingInput, tm.State())

	path := []models.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}
	require.NoError(t, tm.Resume(path))
	assert.Equal(t, ExecutingGoal, tm.State())
	assert.Equal(t, 2, tm.Pending())

	assert.ErrorIs(t, tm.Resume(path), ErrNotAwaiting)

	next, err := tm.Step()
	require.NoError(t, err)
	assert.Equal(t, models.Position{X: 1, Y: 0}, next)
	assert.Equal(t, ExecutingGoal, tm.State())

	next, err = tm.Step()
	require.NoError(t, err)
	assert.Equal(t, models.Position{X: 2, Y: 0}, next)
	assert.Equal(t, AwaitingInput, tm.State(), "finishing the goal waits for input again")

	_, err = tm.Step()
	assert.ErrorIs(t, err, ErrNoGoalToStep)
}

func TestTurnMachineGoalIsCopied(t *testing.T) {
	tm := NewTurnMachine()
	path := []models.Position{{X: 1, Y: 1}}
	require.NoError(t, tm.SetGoal(path))
	path[0] = models.Position{X: 9, Y: 9}

	next, err := tm.Step()
	require.NoError(t, err)
	assert.Equal(t, models.Position{X: 1, Y: 1}, next)
}

func TestTurnMachineEmptyGoal(t *testing.T) {
	tm := NewTurnMachine()
	require.NoError(t, tm.SetGoal(nil))
	assert.Equal(t, AwaitingInput, tm.State())
}

func TestTurnMachineInterrupt(t *testing.T) {
	tm := NewTurnMachine()
	require.NoError(t, tm.SetGoal([]models.Position{{X: 1}, {X: 2}}))
	tm.Interrupt()
	assert.Equal(t, AwaitingInput, tm.State())
	assert.Zero(t, tm.Pending())
}

func TestTurnMachineFinish(t *testing.T) {
	tm := NewTurnMachine()
	require.NoError(t, tm.SetGoal([]models.Position{{X: 1}}))
	tm.Finish()
	assert.Equal(t, Done, tm.State())
	assert.Equal(t, "done", tm.State().String())

	tm.Interrupt()
	assert.Equal(t, Done, tm.State(), "a finished game stays finished")
	assert.ErrorIs(t, tm.Resume(nil), ErrGameOver)
	assert.ErrorIs(t, tm.SetGoal([]models.Position{{X: 1}}), ErrGameOver)
	_, err := tm.Step()
	assert.ErrorIs(t, err, ErrGameOver)
}
