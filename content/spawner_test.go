package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

var _ dungeon.Populator = (*Spawner)(nil)

func TestLowDangerMonsters(t *testing.T) {
	s := NewSpawner()
	rng := random.New(1)

	for i := 0; i < 200; i++ {
		m, ok := s.Monster(rng, 1).(*models.Monster)
		require.True(t, ok)
		assert.Contains(t, []string{"pumpkin", "cat"}, m.Title, "only pumpkins and cats lurk near the surface")
	}
}

func TestHighDangerMonstersIncludeDragons(t *testing.T) {
	s := NewSpawner()
	rng := random.New(2)

	titles := make(map[string]int)
	for i := 0; i < 500; i++ {
		m := s.Monster(rng, 12).(*models.Monster)
		titles[m.Title]++
	}
	assert.Positive(t, titles["dragon"])
	assert.Positive(t, titles["skull"])
	assert.Positive(t, titles["crab"])
}

func TestMonsterStats(t *testing.T) {
	s := &Spawner{
		Monsters: []MonsterKind{{Title: "crab", Prefix: "Crab", HP: 5, Attack: 3, Defense: 4, Speed: 1, Attitude: models.AttitudeHostile, Scale: 1}},
		Names:    NewNameGen(),
	}

	m := s.Monster(random.New(3), 0).(*models.Monster)

	assert.Equal(t, "monster-1", m.ID)
	assert.True(t, strings.HasPrefix(m.Name, "Crab"))
	assert.Equal(t, 5, m.HP)
	assert.Equal(t, 5, m.MaxHP)
	assert.Equal(t, models.AttitudeHostile, m.Attitude)
	assert.True(t, m.Awake(), "monsters that never sleep start awake")
}

func TestNoMonsterKinds(t *testing.T) {
	s := &Spawner{Names: NewNameGen()}
	assert.Nil(t, s.Monster(random.New(1), 5))
}

func TestDoodadsRespectDanger(t *testing.T) {
	s := NewSpawner()
	rng := random.New(4)

	for i := 0; i < 300; i++ {
		d := s.Doodad(rng, 1).(*models.Doodad)
		assert.NotEqual(t, "magic orb", d.Name)
		assert.NotEqual(t, "knife", d.Name)
		assert.Equal(t, "black", d.Art.Background)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[s.Doodad(rng, 9).(*models.Doodad).Name] = true
	}
	assert.True(t, seen["magic orb"])
	assert.True(t, seen["knife"])
}

func TestSpawnerIDsAreUnique(t *testing.T) {
	s := NewSpawner()
	rng := random.New(5)
	ids := make(map[string]bool)
	for i := 0; i < 50; i++ {
		for _, occ := range []models.Occupant{s.Monster(rng, 3), s.Doodad(rng, 3)} {
			assert.False(t, ids[occ.GetID()])
			ids[occ.GetID()] = true
		}
	}
}

func TestNameGen(t *testing.T) {
	n := NewNameGen()
	rng := random.New(6)

	assert.Equal(t, "Pumpkin", n.Name(rng, "Pump", "kin"))
	assert.Equal(t, "Pumpkin", n.Name(rng, "Pump", "kin"), "a fixed name repeats once attempts run out")

	name := n.Name(rng, "", "skull")
	assert.True(t, strings.HasSuffix(name, "skull"))

	names := make(map[string]bool)
	for i := 0; i < 20; i++ {
		names[n.Name(rng, "", "")] = true
	}
	assert.Greater(t, len(names), 15)

	n.Clear()
	assert.False(t, n.used.Has("Pumpkin"))
}
