package dungeon

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// Kind tells rooms and hallways apart
type Kind int

const (
	KindRoom Kind = iota + 1
	KindHallway
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindHallway:
		return "hallway"
	default:
		return "unknown"
	}
}

// MapNode is a vertex of the connectivity graph. Rooms only ever connect to
// hallways and hallways only to rooms.
type MapNode interface {
	ID() NodeID
	Kind() Kind
	// Position is the representative cell of the node
	Position() models.Position
	Name() string
	Description() string
	// Connections returns the neighbouring node ids in ascending order
	Connections() []NodeID
	ConnectedTo(id NodeID) bool

	base() *nodeBase
}

type nodeBase struct {
	id          NodeID
	position    models.Position
	name        string
	description string
	connections mapset.Set[NodeID]
}

func newNodeBase(id NodeID, pos models.Position) nodeBase {
	return nodeBase{
		id:          id,
		position:    pos,
		connections: mapset.New[NodeID](),
	}
}

func (n *nodeBase) ID() NodeID                 { return n.id }
func (n *nodeBase) Position() models.Position  { return n.position }
func (n *nodeBase) Name() string               { return n.name }
func (n *nodeBase) Description() string        { return n.description }
func (n *nodeBase) ConnectedTo(id NodeID) bool { return n.connections.Has(id) }
func (n *nodeBase) base() *nodeBase            { return n }

func (n *nodeBase) Connections() []NodeID {
	ids := make([]NodeID, 0, n.connections.Size())
	n.connections.Each(func(id NodeID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetFlavour names and describes the node
func (n *nodeBase) SetFlavour(name, description string) {
	n.name = name
	n.description = description
}

// Rect is an inclusive rectangle of cells
type Rect struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Contains reports whether pos lies inside the rectangle, edges included
func (r Rect) Contains(pos models.Position) bool {
	return pos.X >= r.Left && pos.X <= r.Right && pos.Y >= r.Top && pos.Y <= r.Bottom
}

// Expand grows the rectangle by n cells on every side
func (r Rect) Expand(n int) Rect {
	return Rect{Left: r.Left - n, Right: r.Right + n, Top: r.Top - n, Bottom: r.Bottom + n}
}

// Intersects reports whether two rectangles share a cell
func (r Rect) Intersects(o Rect) bool {
	return r.Left <= o.Right && o.Left <= r.Right && r.Top <= o.Bottom && o.Top <= r.Bottom
}

// Interior is the rectangle inside the wall ring
func (r Rect) Interior() Rect {
	return r.Expand(-1)
}

// Room is a rectangular chamber. Bounds include the wall ring.
type Room struct {
	nodeBase
	Bounds    Rect
	ItemSpots []models.Position
}

func (r *Room) Kind() Kind { return KindRoom }

// Center is the cell the room was placed around
func (r *Room) Center() models.Position { return r.position }

// Hallway is a corridor network built up from carved floor cells
type Hallway struct {
	nodeBase
	cells         mapset.Set[models.Position]
	order         []models.Position
	Intersections []models.Position
}

func (h *Hallway) Kind() Kind { return KindHallway }

// Contains reports whether pos is one of the hallway's floor cells
func (h *Hallway) Contains(pos models.Position) bool {
	return h.cells.Has(pos)
}

// Cells returns the hallway's floor cells in the order they were carved
func (h *Hallway) Cells() []models.Position {
	out := make([]models.Position, len(h.order))
	copy(out, h.order)
	return out
}

// Size is the number of floor cells
func (h *Hallway) Size() int {
	return len(h.order)
}

// AddCells adds floor cells and moves the representative position to the member
// cell closest to the centroid.
func (h *Hallway) AddCells(cells ...models.Position) {
	for _, c := range cells {
		if h.cells.Has(c) {
			continue
		}
		h.cells.Put(c)
		h.order = append(h.order, c)
	}
	h.recomputePosition()
}

func (h *Hallway) recomputePosition() {
	if len(h.order) == 0 {
		return
	}
	sx, sy := 0.0, 0.0
	for _, c := range h.order {
		sx += float64(c.X)
		sy += float64(c.Y)
	}
	cx := sx / float64(len(h.order))
	cy := sy / float64(len(h.order))

	best := h.order[0]
	bestDist := -1.0
	for _, c := range h.order {
		dx := float64(c.X) - cx
		dy := float64(c.Y) - cy
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			best = c
			bestDist = d
		}
	}
	h.position = best
}
