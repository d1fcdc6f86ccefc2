// Package dungeon generates levels and answers questions about them: what is at a
// cell, which room or hallway owns it, where the player can travel next.
package dungeon

import (
	"errors"
	"fmt"
	"time"

	"github.com/laurheth/pumpkin-oubliette/fov"
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/pathfinder"
)

var (
	ErrInvalidParams = errors.New("invalid dungeon parameters")
	ErrNoRooms       = errors.New("no room could be placed")
	ErrBlocked       = errors.New("cell is not passable")
	ErrOccupied      = errors.New("cell is occupied")
)

// closedDoorWeight makes routes prefer open floor over doors that need opening
const closedDoorWeight = 2.0

// Dungeon is one generated level: the grid, the room/hallway graph and the
// entrance and exit.
type Dungeon struct {
	Level int
	Seed  int64

	grid     *Grid
	graph    *Graph
	rooms    []NodeID
	hallways []NodeID

	entranceRoom NodeID
	exitRoom     NodeID
	Entrance     models.Position
	Exit         models.Position

	params     Params
	pathFinder *pathfinder.PathFinder
	view       *fov.FOV
	populated  []models.Occupant
}

func newDungeon(params Params, seed int64) *Dungeon {
	d := &Dungeon{
		Level:  params.Level,
		Seed:   seed,
		grid:   NewGrid(params.Width, params.Height),
		graph:  NewGraph(),
		params: params,
	}
	d.pathFinder = d.NewPathFinder(d.terrainPassable)
	d.view = fov.New(d.grid, d.seeThrough, params.FOVRadius)
	return d
}

func (d *Dungeon) terrainPassable(pos models.Position) bool {
	cell := d.grid.At(pos)
	return cell != nil && cell.Passable
}

func (d *Dungeon) seeThrough(pos models.Position) bool {
	cell := d.grid.At(pos)
	return cell != nil && cell.SeeThrough
}

func (d *Dungeon) stepWeight(pos models.Position) float64 {
	if cell := d.grid.At(pos); cell != nil && cell.Door == DoorClosed {
		return closedDoorWeight
	}
	return 1
}

func (d *Dungeon) Width() int  { return d.grid.width }
func (d *Dungeon) Height() int { return d.grid.height }

// Grid exposes the cell store for reading
func (d *Dungeon) Grid() *Grid { return d.grid }

// Graph exposes the node graph for reading
func (d *Dungeon) Graph() *Graph { return d.graph }

// Cell returns the cell at (x, y), or nil outside the level
func (d *Dungeon) Cell(x, y int) *Cell {
	return d.grid.Cell(x, y)
}

// PathFinder routes over terrain, ignoring occupants
func (d *Dungeon) PathFinder() *pathfinder.PathFinder {
	return d.pathFinder
}

// NewPathFinder builds a finder with a custom passability rule, sharing the door
// weights of the level. Every search may expand twice the level's area, however
// close the endpoints are: two cells either side of a wall can be a long walk apart.
func (d *Dungeon) NewPathFinder(canPass func(pos models.Position) bool) *pathfinder.PathFinder {
	budget := 2 * d.grid.width * d.grid.height
	return pathfinder.New(canPass, budget,
		pathfinder.WithWeight(d.stepWeight),
		pathfinder.WithIterationFactor(budget))
}

// NodeAt returns the room or hallway owning pos, or nil
func (d *Dungeon) NodeAt(pos models.Position) MapNode {
	cell := d.grid.At(pos)
	if cell == nil {
		return nil
	}
	return d.graph.Node(cell.Node)
}

func (d *Dungeon) Room(id NodeID) *Room       { return d.graph.Room(id) }
func (d *Dungeon) Hallway(id NodeID) *Hallway { return d.graph.Hallway(id) }

// Rooms returns every room in placement order
func (d *Dungeon) Rooms() []*Room {
	out := make([]*Room, 0, len(d.rooms))
	for _, id := range d.rooms {
		out = append(out, d.graph.Room(id))
	}
	return out
}

// Hallways returns every surviving hallway in creation order
func (d *Dungeon) Hallways() []*Hallway {
	out := make([]*Hallway, 0, len(d.hallways))
	for _, id := range d.hallways {
		out = append(out, d.graph.Hallway(id))
	}
	return out
}

func (d *Dungeon) EntranceRoom() *Room { return d.graph.Room(d.entranceRoom) }
func (d *Dungeon) ExitRoom() *Room     { return d.graph.Room(d.exitRoom) }

// NodeDistance is the graph distance between two nodes
func (d *Dungeon) NodeDistance(a, b NodeID) int {
	return d.graph.NodeDistance(a, b)
}

// FindMostDistantRoom returns the room farthest from start in graph hops
func (d *Dungeon) FindMostDistantRoom(start NodeID) *Room {
	id, _ := d.graph.FindMostDistant(start, d.rooms)
	return d.graph.Room(id)
}

// FindPath routes between two cells over terrain
func (d *Dungeon) FindPath(from, to models.Position) []models.Position {
	return d.pathFinder.FindPath(from, to, true)
}

// Look recomputes visibility from origin
func (d *Dungeon) Look(origin models.Position) {
	d.grid.UnseeAll()
	d.view.Look(origin)
}

// Visible reports whether pos was in view at the last Look
func (d *Dungeon) Visible(pos models.Position) bool {
	cell := d.grid.At(pos)
	return cell != nil && cell.Visible
}

// Place puts an occupant on the level at pos
func (d *Dungeon) Place(occ models.Occupant, pos models.Position) error {
	cell := d.grid.At(pos)
	if cell == nil || !cell.Passable {
		return fmt.Errorf("place %s at %v: %w", occ.GetID(), pos, ErrBlocked)
	}
	if !d.grid.SetOccupant(pos, occ) {
		return fmt.Errorf("place %s at %v: %w", occ.GetID(), pos, ErrOccupied)
	}
	occ.SetPosition(pos)
	return nil
}

// Remove takes an occupant off the level
func (d *Dungeon) Remove(occ models.Occupant) {
	pos := occ.GetPosition()
	if cell := d.grid.At(pos); cell != nil && cell.occupant == occ {
		d.grid.ClearOccupant(pos)
	}
}

// MoveOccupant moves occ to the cell at to. Walking into a closed door opens it.
func (d *Dungeon) MoveOccupant(occ models.Occupant, to models.Position) error {
	cell := d.grid.At(to)
	if cell == nil || !cell.Passable {
		return ErrBlocked
	}
	if cell.occupant != nil && cell.occupant != occ {
		return ErrOccupied
	}
	if d.NodeAt(to) == nil {
		panic(fmt.Sprintf("dungeon: passable cell %v has no owning node", to))
	}
	if cell.Door == DoorClosed {
		d.grid.SetCellParams(to.X, to.Y, doorParams(cell.Node, DoorOpen))
	}
	d.Remove(occ)
	d.grid.SetOccupant(to, occ)
	occ.SetPosition(to)
	return nil
}

// Populated returns the occupants placed while generating the level
func (d *Dungeon) Populated() []models.Occupant {
	out := make([]models.Occupant, len(d.populated))
	copy(out, d.populated)
	return out
}

// DrawableGrid snapshots what every cell currently looks like
func (d *Dungeon) DrawableGrid() DrawableGrid {
	return d.grid.Drawable()
}

// Summary describes the level for the run ledger
func (d *Dungeon) Summary() models.LevelRecord {
	return models.LevelRecord{
		Level:     d.Level,
		Seed:      d.Seed,
		Width:     d.grid.width,
		Height:    d.grid.height,
		Density:   d.params.Density,
		Rooms:     len(d.rooms),
		Hallways:  len(d.hallways),
		Entrance:  d.Entrance,
		Exit:      d.Exit,
		CreatedAt: time.Now(),
	}
}
