package dungeon

import (
	"fmt"
	"math"
	"sort"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// Direction is one of the eight compass points
type Direction int

const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

var directionNames = [...]string{"east", "northeast", "north", "northwest", "west", "southwest", "south", "southeast"}

func (d Direction) String() string {
	return directionNames[d]
}

// Bearing is the clockwise angle from north, so sorting by it reads the compass
// clockwise starting at north.
func (d Direction) Bearing() float64 {
	return math.Mod(450-float64(d)*45, 360)
}

// Heading steps and sector layout
const (
	headingSteps  = 10
	sectorWidth   = 45.0
	sectorOffset  = 20.0
	compassPoints = 8
)

// TravelOption is one destination the player can pick
type TravelOption struct {
	Target    models.Position   `json:"target"`
	Node      NodeID            `json:"node"`
	Label     string            `json:"label"`
	Direction Direction         `json:"direction"`
	Adjacent  bool              `json:"adjacent"`
	Path      []models.Position `json:"-"`
}

type travelCandidate struct {
	pos  models.Position
	node MapNode
}

// HeadingOf averages the first steps of a path and buckets the result into a
// compass direction. Rows grow downwards, so y is flipped.
func HeadingOf(from models.Position, path []models.Position) Direction {
	sx, sy := 0, 0
	prev := from
	for i, p := range path {
		if i >= headingSteps {
			break
		}
		sx += p.X - prev.X
		sy += p.Y - prev.Y
		prev = p
	}
	angle := math.Atan2(float64(-sy), float64(sx)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return bucket(angle)
}

func bucket(angle float64) Direction {
	idx := int(math.Floor((angle+sectorOffset)/sectorWidth)) % compassPoints
	return Direction(idx)
}

// TravelOptions lists the places reachable from pos in one decision: the nodes
// connected to where the player stands, or the junctions of the hallway they
// are in.
func (d *Dungeon) TravelOptions(pos models.Position) []TravelOption {
	current := d.NodeAt(pos)
	if current == nil {
		panic(fmt.Sprintf("dungeon: position %v has no owning node", pos))
	}

	var candidates []travelCandidate
	seen := make(map[models.Position]bool)
	add := func(p models.Position, node MapNode) {
		if p == pos || seen[p] {
			return
		}
		seen[p] = true
		candidates = append(candidates, travelCandidate{pos: p, node: node})
	}

	for _, id := range current.Connections() {
		node := d.graph.Node(id)
		if h, ok := node.(*Hallway); ok && len(h.Intersections) > 0 {
			for _, p := range h.Intersections {
				add(p, h)
			}
			continue
		}
		add(node.Position(), node)
	}
	if h, ok := current.(*Hallway); ok {
		for _, p := range h.Intersections {
			add(p, h)
		}
	}

	var options []TravelOption
	for _, c := range candidates {
		path := d.pathFinder.FindPath(pos, c.pos, true)
		if len(path) == 0 || d.supersededPath(path, c, candidates) || d.strayPath(path, current.ID(), c.node.ID()) {
			continue
		}
		opt := TravelOption{
			Target:    c.pos,
			Node:      c.node.ID(),
			Direction: HeadingOf(pos, path),
			Adjacent:  len(path) == 1,
			Path:      path,
		}
		if opt.Adjacent {
			opt.Label = fmt.Sprintf("Step into the %s", displayName(c.node))
		} else {
			opt.Label = fmt.Sprintf("Head %s to the %s", opt.Direction, displayName(c.node))
		}
		options = append(options, opt)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Direction.Bearing() < options[j].Direction.Bearing()
	})
	return options
}

// supersededPath reports whether the path walks over another candidate before
// reaching its own target.
func (d *Dungeon) supersededPath(path []models.Position, self travelCandidate, all []travelCandidate) bool {
	for _, step := range path[:len(path)-1] {
		for _, other := range all {
			if other.pos != self.pos && other.pos == step {
				return true
			}
		}
	}
	return false
}

// strayPath reports whether the path crosses a node other than the two it joins
func (d *Dungeon) strayPath(path []models.Position, from, to NodeID) bool {
	for _, step := range path {
		owner := d.grid.At(step).Node
		if owner != from && owner != to {
			return true
		}
	}
	return false
}

func displayName(node MapNode) string {
	if node.Name() != "" {
		return node.Name()
	}
	return node.Kind().String()
}
