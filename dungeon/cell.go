package dungeon

import (
	"github.com/laurheth/pumpkin-oubliette/models"
)

// NodeID addresses a room or hallway in the dungeon's node arena
type NodeID int

// NoNode is the owner of cells that have never been carved
const NoNode NodeID = 0

// DoorState says whether a cell holds a door and how it is set
type DoorState int

const (
	DoorNone DoorState = iota
	DoorClosed
	DoorOpen
)

// CellParams is the terrain part of a cell, written in one go by carving
type CellParams struct {
	Art        models.Art
	Passable   bool
	Empty      bool
	SeeThrough bool
	Node       NodeID
	Door       DoorState
}

// Cell is one square of the dungeon
type Cell struct {
	Art        models.Art
	Passable   bool
	Empty      bool
	SeeThrough bool
	Door       DoorState
	Node       NodeID

	Visible bool
	Seen    bool

	memory   models.Art
	occupant models.Occupant
}

var blankArt = models.Art{Glyph: " ", Foreground: "gray", Background: "black"}

// Occupant returns whoever is standing in the cell, if anyone
func (c *Cell) Occupant() models.Occupant {
	return c.occupant
}

// EffectiveArt is what the renderer should draw: the remembered art in gray when
// the cell is out of sight, otherwise the occupant or the terrain.
func (c *Cell) EffectiveArt() models.Art {
	if !c.Visible {
		if !c.Seen {
			return blankArt
		}
		art := c.memory
		art.Foreground = "gray"
		art.Background = "black"
		return art
	}
	return c.liveArt()
}

func (c *Cell) liveArt() models.Art {
	if c.occupant != nil {
		return c.occupant.GetArt()
	}
	return c.Art
}

func (c *Cell) setParams(p CellParams) {
	c.Art = p.Art
	c.Passable = p.Passable
	c.Empty = p.Empty
	c.SeeThrough = p.SeeThrough
	c.Node = p.Node
	c.Door = p.Door
}

func (c *Cell) see() {
	c.Visible = true
	c.Seen = true
	c.memory = c.liveArt()
}
