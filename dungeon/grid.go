package dungeon

import (
	"github.com/laurheth/pumpkin-oubliette/models"
)

// Grid is the flat cell store of a dungeon level
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid allocates a grid where every cell is empty
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for i := range g.cells {
		g.cells[i] = Cell{Empty: true, memory: blankArt}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether pos lies on the grid
func (g *Grid) InBounds(pos models.Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// Cell returns the cell at (x, y), or nil outside the grid
func (g *Grid) Cell(x, y int) *Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return &g.cells[x+y*g.width]
}

// At is Cell for a Position
func (g *Grid) At(pos models.Position) *Cell {
	return g.Cell(pos.X, pos.Y)
}

// SetCellParams overwrites the terrain of a cell. Visibility and occupant are kept.
func (g *Grid) SetCellParams(x, y int, params CellParams) bool {
	cell := g.Cell(x, y)
	if cell == nil {
		return false
	}
	cell.setParams(params)
	return true
}

// SetOccupant puts occ into the cell at pos. A cell holds at most one occupant.
func (g *Grid) SetOccupant(pos models.Position, occ models.Occupant) bool {
	cell := g.At(pos)
	if cell == nil || (cell.occupant != nil && cell.occupant != occ) {
		return false
	}
	cell.occupant = occ
	return true
}

// ClearOccupant empties the cell at pos
func (g *Grid) ClearOccupant(pos models.Position) {
	if cell := g.At(pos); cell != nil {
		cell.occupant = nil
	}
}

// UnseeAll drops the visible flag everywhere. Seen flags and memories stay.
func (g *Grid) UnseeAll() {
	for i := range g.cells {
		g.cells[i].Visible = false
	}
}

// SetVisible marks the cell at pos visible and remembers what it looks like
func (g *Grid) SetVisible(pos models.Position) {
	if cell := g.At(pos); cell != nil {
		cell.see()
	}
}

// reassign moves ownership of every cell owned by from over to to
func (g *Grid) reassign(from, to NodeID) int {
	moved := 0
	for i := range g.cells {
		if g.cells[i].Node == from {
			g.cells[i].Node = to
			moved++
		}
	}
	return moved
}

// DrawableGrid is a snapshot of what each cell should look like on screen
type DrawableGrid struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Tiles  []models.Art `json:"tiles"`
}

// At returns the art at (x, y). Callers must stay in bounds.
func (d DrawableGrid) At(x, y int) models.Art {
	return d.Tiles[x+y*d.Width]
}

// Drawable snapshots the effective art of every cell
func (g *Grid) Drawable() DrawableGrid {
	tiles := make([]models.Art, len(g.cells))
	for i := range g.cells {
		tiles[i] = g.cells[i].EffectiveArt()
	}
	return DrawableGrid{Width: g.width, Height: g.height, Tiles: tiles}
}
