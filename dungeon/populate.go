package dungeon

import (
	"fmt"

	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

// Chances that a room gets a doodad or a monster
const (
	doodadChance  = 0.6
	monsterChance = 0.5
)

// Populator makes the things that live in a level. Either method may return nil
// to leave the room alone.
type Populator interface {
	Doodad(rng random.Source, danger float64) models.Occupant
	Monster(rng random.Source, danger float64) models.Occupant
}

// Danger scales content by depth, by how far the room is from the entrance and by
// how violent the player has been.
func Danger(level, distance int, aggression float64) float64 {
	return float64(level) + float64(distance)/2 + aggression
}

func (g *generator) populate() {
	pop := g.params.Populator
	if pop == nil {
		return
	}
	d := g.d
	for _, room := range d.Rooms() {
		if room.ID() == d.entranceRoom || room.ID() == d.exitRoom {
			continue
		}
		dist := d.graph.NodeDistance(d.entranceRoom, room.ID())
		if dist == Unreachable {
			panic(fmt.Sprintf("dungeon: room %d is not connected to the entrance", room.ID()))
		}
		danger := Danger(d.Level, dist, g.params.Aggression)

		if len(room.ItemSpots) > 0 && g.rng.Float64() < doodadChance {
			spot := random.Pick(g.rng, room.ItemSpots)
			if occ := pop.Doodad(g.rng, danger); occ != nil {
				g.place(occ, spot)
			}
		}
		if g.rng.Float64() < monsterChance {
			if occ := pop.Monster(g.rng, danger); occ != nil {
				g.place(occ, room.Center())
			}
		}
	}
}

func (g *generator) place(occ models.Occupant, pos models.Position) {
	if err := g.d.Place(occ, pos); err != nil {
		g.logf("skipping %s: %v", occ.GetID(), err)
		return
	}
	g.d.populated = append(g.d.populated, occ)
}
