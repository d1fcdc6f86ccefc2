package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// chain builds room - hallway - room - hallway - room
func chain(t *testing.T) (*Graph, []NodeID) {
	t.Helper()
	g := NewGraph()
	r1 := g.AddRoom(models.Position{X: 1, Y: 1}, Rect{})
	h1 := g.AddHallway()
	r2 := g.AddRoom(models.Position{X: 5, Y: 1}, Rect{})
	h2 := g.AddHallway()
	r3 := g.AddRoom(models.Position{X: 9, Y: 1}, Rect{})
	g.Connect(r1.ID(), h1.ID())
	g.Connect(h1.ID(), r2.ID())
	g.Connect(r2.ID(), h2.ID())
	g.Connect(h2.ID(), r3.ID())
	return g, []NodeID{r1.ID(), h1.ID(), r2.ID(), h2.ID(), r3.ID()}
}

func TestNodeIDsStartAtOne(t *testing.T) {
	g := NewGraph()
	room := g.AddRoom(models.Position{}, Rect{})
	assert.Equal(t, NodeID(1), room.ID())
	assert.Nil(t, g.Node(NoNode))
	assert.Nil(t, g.Node(42))
}

func TestConnectIsSymmetric(t *testing.T) {
	g := NewGraph()
	a := g.AddRoom(models.Position{}, Rect{})
	b := g.AddHallway()

	g.Connect(a.ID(), b.ID())

	assert.True(t, a.ConnectedTo(b.ID()))
	assert.True(t, b.ConnectedTo(a.ID()))
	assert.Equal(t, []NodeID{b.ID()}, a.Connections())
}

func TestConnectIgnoresSelfLinks(t *testing.T) {
	g := NewGraph()
	h := g.AddHallway()

	g.Connect(h.ID(), h.ID())
	g.Connect(h.ID(), 99)

	assert.Empty(t, h.Connections())
}

func TestTypedLookups(t *testing.T) {
	g := NewGraph()
	room := g.AddRoom(models.Position{}, Rect{})
	h := g.AddHallway()

	assert.Same(t, room, g.Room(room.ID()))
	assert.Nil(t, g.Room(h.ID()))
	assert.Same(t, h, g.Hallway(h.ID()))
	assert.Nil(t, g.Hallway(room.ID()))
	assert.Equal(t, KindRoom, g.Node(room.ID()).Kind())
	assert.Equal(t, KindHallway, g.Node(h.ID()).Kind())

	g.Remove(h.ID())
	assert.Nil(t, g.Hallway(h.ID()))
	assert.Nil(t, g.Room(NoNode))
	assert.Nil(t, g.Hallway(42))
}

func TestRemoveDropsEveryLink(t *testing.T) {
	g, ids := chain(t)

	g.Remove(ids[1])

	assert.Nil(t, g.Node(ids[1]))
	assert.False(t, g.Node(ids[0]).ConnectedTo(ids[1]))
	assert.False(t, g.Node(ids[2]).ConnectedTo(ids[1]))
	assert.Equal(t, 4, g.Len())
}

func TestNodeDistance(t *testing.T) {
	g, ids := chain(t)

	assert.Equal(t, 0, g.NodeDistance(ids[0], ids[0]))
	assert.Equal(t, 1, g.NodeDistance(ids[0], ids[1]))
	assert.Equal(t, 2, g.NodeDistance(ids[0], ids[2]))
	assert.Equal(t, 4, g.NodeDistance(ids[0], ids[4]))
	assert.Equal(t, 4, g.NodeDistance(ids[4], ids[0]))
}

func TestNodeDistanceUnreachable(t *testing.T) {
	g, ids := chain(t)
	lonely := g.AddRoom(models.Position{}, Rect{})

	assert.Equal(t, Unreachable, g.NodeDistance(ids[0], lonely.ID()))
	assert.Equal(t, Unreachable, g.NodeDistance(ids[0], 77))
}

func TestNodeDistanceHandlesCycles(t *testing.T) {
	g, ids := chain(t)
	g.Connect(ids[4], ids[1])

	assert.Equal(t, 2, g.NodeDistance(ids[0], ids[4]))
}

func TestFindMostDistant(t *testing.T) {
	g, ids := chain(t)
	rooms := []NodeID{ids[0], ids[2], ids[4]}

	best, dist := g.FindMostDistant(ids[0], rooms)
	assert.Equal(t, ids[4], best)
	assert.Equal(t, 4, dist)

	best, dist = g.FindMostDistant(ids[2], rooms)
	assert.Equal(t, ids[4], best, "ties go to the later room")
	assert.Equal(t, 2, dist)
}

func TestFindMostDistantSkipsUnreachable(t *testing.T) {
	g, ids := chain(t)
	lonely := g.AddRoom(models.Position{}, Rect{})

	best, _ := g.FindMostDistant(ids[0], []NodeID{ids[0], ids[2], lonely.ID()})
	assert.Equal(t, ids[2], best)
}

func TestHallwayPositionNearestCentroid(t *testing.T) {
	g := NewGraph()
	h := g.AddHallway()

	h.AddCells(
		models.Position{X: 0, Y: 0},
		models.Position{X: 1, Y: 0},
		models.Position{X: 2, Y: 0},
		models.Position{X: 3, Y: 0},
		models.Position{X: 4, Y: 0},
	)
	assert.Equal(t, models.Position{X: 2, Y: 0}, h.Position())

	h.AddCells(models.Position{X: 2, Y: 0}, models.Position{X: 4, Y: 1}, models.Position{X: 4, Y: 2})
	assert.Equal(t, 7, h.Size(), "duplicates are ignored")
	assert.True(t, h.Contains(models.Position{X: 4, Y: 2}))
	assert.Equal(t, models.Position{X: 3, Y: 0}, h.Position())
}

func TestRect(t *testing.T) {
	r := Rect{Left: 2, Right: 6, Top: 1, Bottom: 4}

	assert.True(t, r.Contains(models.Position{X: 2, Y: 1}))
	assert.True(t, r.Contains(models.Position{X: 6, Y: 4}))
	assert.False(t, r.Contains(models.Position{X: 7, Y: 4}))
	assert.Equal(t, Rect{Left: 3, Right: 5, Top: 2, Bottom: 3}, r.Interior())
	assert.True(t, r.Intersects(Rect{Left: 6, Right: 9, Top: 4, Bottom: 8}))
	assert.False(t, r.Intersects(Rect{Left: 7, Right: 9, Top: 0, Bottom: 8}))
}
