package services

import (
	"errors"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// TurnState is where the player's turn loop currently is
type TurnState int

const (
	AwaitingInput TurnState = iota
	ExecutingGoal
	Done
)

func (s TurnState) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case ExecutingGoal:
		return "executing_goal"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotAwaiting  = errors.New("not waiting for input")
	ErrNoGoalToStep = errors.New("no goal in progress")
)

// TurnMachine drives the player's turns. The player is either waiting for a
// decision, walking along a chosen path one step per turn, or finished.
type TurnMachine struct {
	state TurnState
	goal  []models.Position
}

// NewTurnMachine starts out waiting for input
func NewTurnMachine() *TurnMachine {
	return &TurnMachine{state: AwaitingInput}
}

func (t *TurnMachine) State() TurnState {
	return t.state
}

// Pending is the number of steps left on the current goal
func (t *TurnMachine) Pending() int {
	return len(t.goal)
}

// SetGoal replaces the current goal. An empty path leaves the machine waiting.
func (t *TurnMachine) SetGoal(path []models.Position) error {
	if t.state == Done {
		return ErrGameOver
	}
	t.goal = append([]models.Position(nil), path...)
	if len(t.goal) == 0 {
		t.state = AwaitingInput
		return nil
	}
	t.state = ExecutingGoal
	return nil
}

// Resume hands the player's decision to the machine. It is only valid while
// waiting for input.
func (t *TurnMachine) Resume(path []models.Position) error {
	switch t.state {
	case Done:
		return ErrGameOver
	case ExecutingGoal:
		return ErrNotAwaiting
	}
	return t.SetGoal(path)
}

// Step pops the next cell of the goal. The machine goes back to waiting once the
// goal is used up.
func (t *TurnMachine) Step() (models.Position, error) {
	if t.state == Done {
		return models.Position{}, ErrGameOver
	}
	if t.state != ExecutingGoal || len(t.goal) == 0 {
		return models.Position{}, ErrNoGoalToStep
	}
	next := t.goal[0]
	t.goal = t.goal[1:]
	if len(t.goal) == 0 {
		t.state = AwaitingInput
	}
	return next, nil
}

// Interrupt drops whatever goal is in progress
func (t *TurnMachine) Interrupt() {
	if t.state == Done {
		return
	}
	t.goal = nil
	t.state = AwaitingInput
}

// Finish ends the game
func (t *TurnMachine) Finish() {
	t.goal = nil
	t.state = Done
}
