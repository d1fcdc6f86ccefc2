package dungeon

import (
	"github.com/laurheth/pumpkin-oubliette/models"
)

// neighbourhood counts the cells of a plus shape (a cell and its four orthogonal
// neighbours) by owner kind and passability.
type neighbourhood struct {
	roomPassable   int
	roomImpassable int
	hallPassable   int
	hallImpassable int
}

func (g *generator) survey(pos models.Position) neighbourhood {
	var n neighbourhood
	cells := append([]models.Position{pos}, pos.Add(0, -1), pos.Add(1, 0), pos.Add(0, 1), pos.Add(-1, 0))
	for _, p := range cells {
		cell := g.d.grid.At(p)
		if cell == nil {
			continue
		}
		node := g.d.graph.Node(cell.Node)
		if node == nil {
			continue
		}
		switch node.Kind() {
		case KindRoom:
			if cell.Passable {
				n.roomPassable++
			} else {
				n.roomImpassable++
			}
		case KindHallway:
			if cell.Passable {
				n.hallPassable++
			} else {
				n.hallImpassable++
			}
		}
	}
	return n
}

// postProcess hangs doors in single-width room entrances, records hallway
// junctions and finds room cells out of the way of traffic for items.
func (g *generator) postProcess() {
	grid := g.d.grid
	for y := 1; y < grid.height-1; y++ {
		for x := 1; x < grid.width-1; x++ {
			cell := grid.Cell(x, y)
			if !cell.Passable {
				continue
			}
			pos := models.Position{X: x, Y: y}
			node := g.d.graph.Node(cell.Node)
			if node == nil {
				continue
			}
			n := g.survey(pos)
			switch node.Kind() {
			case KindHallway:
				h := node.(*Hallway)
				if n.roomPassable == 1 && n.roomImpassable == 2 && n.hallPassable == 2 {
					grid.SetCellParams(x, y, doorParams(h.ID(), DoorClosed))
				} else if n.hallPassable > 3 && n.roomPassable+n.roomImpassable == 0 {
					h.Intersections = append(h.Intersections, pos)
				}
			case KindRoom:
				if n.roomPassable < 4 && n.hallPassable == 0 {
					room := node.(*Room)
					room.ItemSpots = append(room.ItemSpots, pos)
				}
			}
		}
	}
}
