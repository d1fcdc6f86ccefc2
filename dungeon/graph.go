package dungeon

import (
	"math"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// Unreachable is the distance between nodes with no route between them
const Unreachable = math.MaxInt

// Graph is an arena of rooms and hallways. Slot 0 is never used so that the zero
// NodeID means "no node". Removed nodes leave a nil slot and ids are never reused.
type Graph struct {
	nodes []MapNode
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{nodes: []MapNode{nil}}
}

func (g *Graph) nextID() NodeID {
	return NodeID(len(g.nodes))
}

// AddRoom registers a room centred on center
func (g *Graph) AddRoom(center models.Position, bounds Rect) *Room {
	room := &Room{nodeBase: newNodeBase(g.nextID(), center), Bounds: bounds}
	g.nodes = append(g.nodes, room)
	return room
}

// AddHallway registers an empty hallway
func (g *Graph) AddHallway() *Hallway {
	h := &Hallway{
		nodeBase: newNodeBase(g.nextID(), models.Position{}),
		cells:    mapset.New[models.Position](),
	}
	g.nodes = append(g.nodes, h)
	return h
}

// Node returns the node with the given id, or nil
func (g *Graph) Node(id NodeID) MapNode {
	if id <= NoNode || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Room returns the room with the given id, or nil if id is not a live room
func (g *Graph) Room(id NodeID) *Room {
	node := g.Node(id)
	if node == nil || node.Kind() != KindRoom {
		return nil
	}
	return node.(*Room)
}

// Hallway returns the hallway with the given id, or nil if id is not a live hallway
func (g *Graph) Hallway(id NodeID) *Hallway {
	node := g.Node(id)
	if node == nil || node.Kind() != KindHallway {
		return nil
	}
	return node.(*Hallway)
}

// Len is the number of live nodes
func (g *Graph) Len() int {
	n := 0
	for _, node := range g.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// Connect links two nodes both ways. Self links and missing nodes are ignored.
func (g *Graph) Connect(a, b NodeID) {
	if a == b {
		return
	}
	na, nb := g.Node(a), g.Node(b)
	if na == nil || nb == nil {
		return
	}
	na.base().connections.Put(b)
	nb.base().connections.Put(a)
}

// Disconnect removes the link between two nodes, if any
func (g *Graph) Disconnect(a, b NodeID) {
	if na := g.Node(a); na != nil {
		na.base().connections.Remove(b)
	}
	if nb := g.Node(b); nb != nil {
		nb.base().connections.Remove(a)
	}
}

// ClearConnections removes every link of a node, on both ends
func (g *Graph) ClearConnections(id NodeID) {
	node := g.Node(id)
	if node == nil {
		return
	}
	for _, other := range node.Connections() {
		g.Disconnect(id, other)
	}
}

// Remove deletes a node and every link pointing at it
func (g *Graph) Remove(id NodeID) {
	if g.Node(id) == nil {
		return
	}
	g.ClearConnections(id)
	g.nodes[id] = nil
}

type hop struct {
	id    NodeID
	depth int
}

// NodeDistance counts the edges on the shortest route between two nodes, giving
// up once the search is deeper than the number of nodes.
func (g *Graph) NodeDistance(a, b NodeID) int {
	if a == b {
		return 0
	}
	if g.Node(a) == nil || g.Node(b) == nil {
		return Unreachable
	}
	bound := g.Len()
	visited := map[NodeID]bool{a: true}
	q := queue.New[hop]()
	q.Enqueue(hop{id: a})
	for !q.Empty() {
		h := q.Dequeue()
		if h.depth >= bound {
			continue
		}
		for _, next := range g.Node(h.id).Connections() {
			if visited[next] {
				continue
			}
			if next == b {
				return h.depth + 1
			}
			visited[next] = true
			q.Enqueue(hop{id: next, depth: h.depth + 1})
		}
	}
	return Unreachable
}

// FindMostDistant returns the candidate farthest from start. Ties go to the
// later candidate and unreachable candidates are skipped. It returns NoNode and
// -1 when nothing is reachable.
func (g *Graph) FindMostDistant(start NodeID, candidates []NodeID) (NodeID, int) {
	best := NoNode
	bestDist := -1
	for _, c := range candidates {
		d := g.NodeDistance(start, c)
		if d == Unreachable {
			continue
		}
		if d >= bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist
}
