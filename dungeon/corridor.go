package dungeon

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// positionSet keeps insertion order so carving stays deterministic
type positionSet struct {
	seen  mapset.Set[models.Position]
	order []models.Position
}

func newPositionSet() *positionSet {
	return &positionSet{seen: mapset.New[models.Position]()}
}

func (s *positionSet) add(p models.Position) {
	if s.seen.Has(p) {
		return
	}
	s.seen.Put(p)
	s.order = append(s.order, p)
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// axisToward steps along whichever axis has further to go
func axisToward(from, to models.Position) models.Position {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dy) > abs(dx) {
		return models.Position{Y: sign(dy)}
	}
	return models.Position{X: sign(dx)}
}

// walled reports whether pos is already built up as wall by some node
func (g *generator) walled(pos models.Position) bool {
	cell := g.d.grid.At(pos)
	return cell != nil && !cell.Passable && cell.Node != NoNode
}

// carveHallway digs a corridor from one room's centre towards another's. The walk
// stops early if it runs into a third room or into a hallway that already reaches
// the destination. It returns the area it added for the fill target.
func (g *generator) carveHallway(from, to *Room) int {
	grid := g.d.grid
	graph := g.d.graph

	current := from.Center()
	end := to.Center()
	dest := to
	axis := axisToward(current, end)

	walls := newPositionSet()
	var floors []models.Position
	var hallway *Hallway

	for steps := 0; current != end && steps < grid.width*grid.height; steps++ {
		dx, dy := end.X-current.X, end.Y-current.Y
		if dx == 0 || dy == 0 {
			axis = axisToward(current, end)
		} else if g.walled(current.Add(axis.X, axis.Y)) && g.walled(current.Add(2*axis.X, 2*axis.Y)) {
			if axis.X != 0 {
				axis = models.Position{Y: sign(dy)}
			} else {
				axis = models.Position{X: sign(dx)}
			}
		}

		current = current.Add(axis.X, axis.Y)
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				walls.add(current.Add(x, y))
			}
		}
		floors = append(floors, current)

		cell := grid.At(current)
		if cell == nil || !cell.Passable {
			continue
		}
		node := graph.Node(cell.Node)
		if node == nil {
			continue
		}
		switch node.Kind() {
		case KindHallway:
			crossed := node.(*Hallway)
			if hallway == nil {
				hallway = crossed
			} else if crossed.ID() != hallway.ID() {
				g.mergeHallways(hallway, crossed)
			}
			if hallway.ConnectedTo(dest.ID()) {
				end = current
			}
		case KindRoom:
			if node.ID() != from.ID() && node.ID() != dest.ID() {
				dest = node.(*Room)
				end = current
			}
		}
	}

	if hallway == nil {
		hallway = graph.AddHallway()
		g.d.hallways = append(g.d.hallways, hallway.ID())
	}
	graph.Connect(hallway.ID(), from.ID())
	graph.Connect(hallway.ID(), dest.ID())

	added := 0
	for _, pos := range walls.order {
		cell := grid.At(pos)
		if cell == nil || !cell.Empty {
			continue
		}
		grid.SetCellParams(pos.X, pos.Y, wallParams(hallway.ID(), hallWallArt))
		added++
	}

	var carved []models.Position
	for _, pos := range floors {
		cell := grid.At(pos)
		if cell == nil || cell.Passable {
			continue
		}
		grid.SetCellParams(pos.X, pos.Y, floorParams(hallway.ID(), g.floorArt(pos.X, pos.Y, hallFloorArt, hallRubbleArt)))
		carved = append(carved, pos)
	}
	hallway.AddCells(carved...)

	return wallAreaFactor * added
}

// mergeHallways folds absorbed into survivor. Cells, member cells and connections
// all move across and absorbed disappears from the level.
func (g *generator) mergeHallways(survivor, absorbed *Hallway) {
	if survivor == nil || absorbed == nil || survivor.ID() == absorbed.ID() {
		return
	}
	graph := g.d.graph
	if graph.Hallway(absorbed.ID()) == nil || graph.Hallway(survivor.ID()) == nil {
		return
	}

	g.d.grid.reassign(absorbed.ID(), survivor.ID())
	survivor.AddCells(absorbed.order...)
	for _, id := range absorbed.Connections() {
		graph.Connect(survivor.ID(), id)
	}
	graph.Remove(absorbed.ID())

	for i, id := range g.d.hallways {
		if id == absorbed.ID() {
			g.d.hallways = append(g.d.hallways[:i], g.d.hallways[i+1:]...)
			break
		}
	}
}
