package services

import (
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/pathfinder"
	"github.com/laurheth/pumpkin-oubliette/random"
)

const (
	playerAttack  = 2
	playerDefense = 1

	// Aggression changes fed back into the danger of later levels
	attackAggression = 0.5
	petAggression    = -0.25
)

// damage is at least one so every landed blow counts
func damage(attack, defense int) int {
	return max(1, attack-defense)
}

// hits reports whether an attack lands; higher attack than defense lands more often
func hits(rng random.Source, attack, defense int) bool {
	return rng.Range(1, 6)+attack-defense >= 3
}

// interact is the player bumping into an occupant
func (ws *WorldService) interact(g *Game, occ models.Occupant) {
	switch target := occ.(type) {
	case *models.Monster:
		if target.Attitude == models.AttitudeFriendly {
			g.Player.Aggression = max(0, g.Player.Aggression+petAggression)
			g.say("You pet %s the %s.", target.Name, target.Title)
			return
		}
		target.Notice()
		g.Player.Aggression += attackAggression
		if !hits(g.rng, playerAttack, target.Defense) {
			g.say("You swing at %s the %s, but miss.", target.Name, target.Title)
			return
		}
		target.HP -= damage(playerAttack, target.Defense)
		if target.HP > 0 {
			g.say("You hit %s the %s.", target.Name, target.Title)
			return
		}
		g.say("You defeat %s the %s!", target.Name, target.Title)
		g.Dungeon.Remove(target)
		g.Registry.Remove(target.ID)
	case *models.Doodad:
		g.say("You see a %s. %s", target.Name, target.Description)
	}
}

// actMonsters gives every monster its turn. It reports whether a hostile
// monster came into view since the last turn.
func (ws *WorldService) actMonsters(g *Game) (spotted bool) {
	d := g.Dungeon
	playerPos := g.Player.GetPosition()

	var finder *pathfinder.PathFinder
	for _, m := range g.Registry.Monsters() {
		if d.Visible(m.GetPosition()) {
			wasAsleep := m.Notice()
			if m.Attitude == models.AttitudeHostile && !g.inView[m.ID] {
				spotted = true
				if wasAsleep {
					g.say("%s the %s notices you.", m.Name, m.Title)
				}
			}
		} else {
			m.Forget()
		}
		if !m.Awake() || m.Attitude != models.AttitudeHostile || g.Player.HP <= 0 {
			continue
		}

		for step := 0; step < max(1, m.Speed); step++ {
			pos := m.GetPosition()
			if pos.Chebyshev(playerPos) <= 1 {
				ws.monsterAttack(g, m)
				break
			}
			if finder == nil {
				finder = d.NewPathFinder(func(p models.Position) bool {
					cell := d.Cell(p.X, p.Y)
					if cell == nil || !cell.Passable {
						return false
					}
					occ := cell.Occupant()
					return occ == nil || occ == models.Occupant(g.Player)
				})
			}
			path := finder.FindPath(pos, playerPos, true)
			if len(path) == 0 || path[0] == playerPos {
				break
			}
			if err := d.MoveOccupant(m, path[0]); err != nil {
				break
			}
		}
	}
	g.inView = hostilesInView(g)
	return spotted
}

// hostilesInView is the set of hostile monsters the player can currently see
func hostilesInView(g *Game) map[string]bool {
	seen := make(map[string]bool)
	for _, m := range g.Registry.Monsters() {
		if m.Attitude == models.AttitudeHostile && g.Dungeon.Visible(m.GetPosition()) {
			seen[m.ID] = true
		}
	}
	return seen
}

func (ws *WorldService) monsterAttack(g *Game, m *models.Monster) {
	if !hits(g.rng, m.Attack, playerDefense) {
		g.say("%s the %s attacks you, but misses.", m.Name, m.Title)
		return
	}
	g.Player.HP -= damage(m.Attack, playerDefense)
	g.say("%s the %s hits you!", m.Name, m.Title)
}
