// Package fov computes what can be seen from a cell.
package fov

import (
	"github.com/laurheth/pumpkin-oubliette/models"
)

// Grid is the part of a map FOV needs to write visibility into
type Grid interface {
	InBounds(pos models.Position) bool
	SetVisible(pos models.Position)
}

// FOV casts rays from an origin out to a square radius
type FOV struct {
	grid          Grid
	canSeeThrough func(pos models.Position) bool
	radius        int
}

// New creates a field of view calculator
func New(grid Grid, canSeeThrough func(pos models.Position) bool, radius int) *FOV {
	return &FOV{
		grid:          grid,
		canSeeThrough: canSeeThrough,
		radius:        radius,
	}
}

// Radius returns the view distance
func (f *FOV) Radius() int {
	return f.radius
}

// Look marks every cell visible from origin. Opaque cells are marked but stop the
// ray that hit them. Callers are expected to clear old visibility first.
func (f *FOV) Look(origin models.Position) {
	if !f.grid.InBounds(origin) {
		return
	}
	f.grid.SetVisible(origin)
	if f.radius <= 0 {
		return
	}

	// One ray to every cell on the square ring at the radius
	r := f.radius
	for i := -r; i <= r; i++ {
		f.castRay(origin, origin.Add(i, -r))
		f.castRay(origin, origin.Add(i, r))
		if i != -r && i != r {
			f.castRay(origin, origin.Add(-r, i))
			f.castRay(origin, origin.Add(r, i))
		}
	}
}

// castRay walks a Bresenham line from origin towards target
func (f *FOV) castRay(origin, target models.Position) {
	x, y := origin.X, origin.Y
	dx := abs(target.X - x)
	dy := -abs(target.Y - y)
	sx, sy := sign(target.X-x), sign(target.Y-y)
	err := dx + dy

	for x != target.X || y != target.Y {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}

		pos := models.Position{X: x, Y: y}
		if !f.grid.InBounds(pos) {
			return
		}
		f.grid.SetVisible(pos)
		if !f.canSeeThrough(pos) {
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
