package models

import "time"

// Position is a grid coordinate. Row indices grow downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add offsets a position
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DistanceSquared is the squared Euclidean distance between two positions
func (p Position) DistanceSquared(o Position) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Chebyshev is the grid distance allowing diagonal steps
func (p Position) Chebyshev(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Manhattan is the taxicab distance between two positions
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Art is the visual representation of a cell or occupant
type Art struct {
	Glyph      string `json:"glyph"`
	Foreground string `json:"fg"`
	Background string `json:"bg"`
}

// Run is one playthrough, from the first level until the player quits
type Run struct {
	ID        int64     `json:"id" meddler:"id,pk"`
	SessionID string    `json:"session_id" meddler:"session_id"`
	Seed      int64     `json:"seed" meddler:"seed"`
	Deepest   int       `json:"deepest" meddler:"deepest"`
	CreatedAt time.Time `json:"created_at" meddler:"created_at"`
	UpdatedAt time.Time `json:"updated_at" meddler:"updated_at"`
}

// LevelRecord describes a generated level. Seed and the generation parameters are
// enough to rebuild the exact same level.
type LevelRecord struct {
	ID        int64     `json:"id"`
	RunID     int64     `json:"run_id"`
	Level     int       `json:"level"`
	Seed      int64     `json:"seed"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Density   float64   `json:"density"`
	Rooms     int       `json:"rooms"`
	Hallways  int       `json:"hallways"`
	Entrance  Position  `json:"entrance"`
	Exit      Position  `json:"exit"`
	CreatedAt time.Time `json:"created_at"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
