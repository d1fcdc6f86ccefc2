// Package content decides what lives in the dungeon: which monsters and doodads
// appear, and what they are called.
package content

import (
	"fmt"

	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

// MonsterKind is one row of the monster table
type MonsterKind struct {
	Title    string
	Art      models.Art
	Attitude models.Attitude
	Prefix   string
	Suffix   string
	HP       int
	Attack   int
	Defense  int
	Speed    int
	Sleeps   bool

	// Weight ramps from zero at Low danger to Scale at High danger
	Low, High, Scale float64
}

// DoodadKind is one row of the doodad table
type DoodadKind struct {
	Name        string
	Description string
	Art         models.Art
	Tags        []string
	// MinDanger is the danger the level must exceed for the doodad to show up
	MinDanger float64
}

var Monsters = []MonsterKind{
	{Title: "pumpkin", Art: models.Art{Glyph: "p", Foreground: "orange", Background: "black"}, Attitude: models.AttitudeHostile,
		Prefix: "Pump", HP: 3, Attack: 2, Defense: 1, Speed: 1, Sleeps: true, Low: 0, High: 5, Scale: 5},
	{Title: "skull", Art: models.Art{Glyph: "s", Foreground: "white", Background: "black"}, Attitude: models.AttitudeHostile,
		Suffix: "skull", HP: 4, Attack: 3, Defense: 2, Speed: 1, Sleeps: true, Low: 3, High: 10, Scale: 3},
	{Title: "crab", Art: models.Art{Glyph: "c", Foreground: "red", Background: "black"}, Attitude: models.AttitudeHostile,
		Prefix: "Crab", HP: 5, Attack: 3, Defense: 4, Speed: 1, Sleeps: true, Low: 2, High: 12, Scale: 3},
	{Title: "dragon", Art: models.Art{Glyph: "D", Foreground: "green", Background: "black"}, Attitude: models.AttitudeHostile,
		HP: 12, Attack: 5, Defense: 5, Speed: 2, Low: 10, High: 10, Scale: 1},
	{Title: "cat", Art: models.Art{Glyph: "f", Foreground: "yellow", Background: "black"}, Attitude: models.AttitudeFriendly,
		HP: 99, Attack: 5, Defense: 5, Speed: 1, Low: 0, High: 0, Scale: 1},
}

var Doodads = []DoodadKind{
	{Name: "bag of peanuts", Description: "Salted, and only a little stale.", Art: models.Art{Glyph: "%", Foreground: "tan"}, Tags: []string{"food"}},
	{Name: "knife", Description: "Sharp enough to carve a pumpkin.", Art: models.Art{Glyph: "/", Foreground: "silver"}, Tags: []string{"knife"}, MinDanger: 3},
	{Name: "hammer", Description: "Heavy, and good for smashing.", Art: models.Art{Glyph: "T", Foreground: "brown"}, Tags: []string{"hammer"}, MinDanger: 3},
	{Name: "cup of coffee", Description: "Still warm.", Art: models.Art{Glyph: "!", Foreground: "brown"}, Tags: []string{"coffee"}},
	{Name: "toy car", Description: "Its wheels still spin.", Art: models.Art{Glyph: "=", Foreground: "red"}},
	{Name: "phone", Description: "No signal down here.", Art: models.Art{Glyph: "[", Foreground: "gray"}},
	{Name: "pile of gold", Description: "Dragons are fond of this.", Art: models.Art{Glyph: "$", Foreground: "yellow"}, Tags: []string{"gold"}, MinDanger: 5},
	{Name: "television", Description: "It only shows static.", Art: models.Art{Glyph: "]", Foreground: "gray"}},
	{Name: "trophy", Description: "Awarded for excellence in pumpkin slaying.", Art: models.Art{Glyph: "Y", Foreground: "yellow"}, MinDanger: 4},
	{Name: "fountain", Description: "The water looks clean enough to drink.", Art: models.Art{Glyph: "{", Foreground: "blue"}, MinDanger: 4},
	{Name: "carton of milk", Description: "Best before yesterday.", Art: models.Art{Glyph: "!", Foreground: "white"}, Tags: []string{"food"}},
	{Name: "taco", Description: "Crunchy.", Art: models.Art{Glyph: "%", Foreground: "yellow"}, Tags: []string{"food"}, MinDanger: 4},
	{Name: "magic orb", Description: "It hums quietly.", Art: models.Art{Glyph: "*", Foreground: "magenta"}, MinDanger: 8},
}

// Spawner creates monsters and doodads scaled by danger
type Spawner struct {
	Monsters []MonsterKind
	Doodads  []DoodadKind
	Names    *NameGen

	next int
}

// NewSpawner uses the built in tables
func NewSpawner() *Spawner {
	return &Spawner{
		Monsters: Monsters,
		Doodads:  Doodads,
		Names:    NewNameGen(),
	}
}

func (s *Spawner) id(kind string) string {
	s.next++
	return fmt.Sprintf("%s-%d", kind, s.next)
}

// Monster creates a monster. Dangerous kinds only show up on dangerous levels.
func (s *Spawner) Monster(rng random.Source, danger float64) models.Occupant {
	if len(s.Monsters) == 0 {
		return nil
	}
	options := make([]random.Weighted[MonsterKind], 0, len(s.Monsters))
	for _, kind := range s.Monsters {
		options = append(options, random.Weighted[MonsterKind]{
			Value:  kind,
			Weight: random.RampWeight(kind.Low, kind.High, kind.Scale, danger),
		})
	}
	kind := random.PickWeighted(rng, options)

	name := s.Names.Name(rng, kind.Prefix, kind.Suffix)
	m := models.NewMonster(s.id("monster"), name, kind.Title, kind.Art, kind.Attitude)
	m.HP = kind.HP
	m.MaxHP = kind.HP
	m.Attack = kind.Attack
	m.Defense = kind.Defense
	m.Speed = kind.Speed
	m.Sleeps = kind.Sleeps
	if !kind.Sleeps {
		m.Notice()
	}
	return m
}

// Doodad creates a doodad from the kinds the danger allows
func (s *Spawner) Doodad(rng random.Source, danger float64) models.Occupant {
	options := make([]random.Weighted[DoodadKind], 0, len(s.Doodads))
	for _, kind := range s.Doodads {
		weight := 0.0
		if danger > kind.MinDanger || kind.MinDanger == 0 {
			weight = 1
		}
		options = append(options, random.Weighted[DoodadKind]{Value: kind, Weight: weight})
	}
	if len(options) == 0 {
		return nil
	}
	kind := random.PickWeighted(rng, options)
	art := kind.Art
	if art.Background == "" {
		art.Background = "black"
	}
	return models.NewDoodad(s.id("doodad"), kind.Name, kind.Description, art, kind.Tags...)
}
