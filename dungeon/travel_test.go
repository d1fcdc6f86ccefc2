package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		angle float64
		want  Direction
	}{
		{0, East},
		{24.9, East},
		{25, NorthEast},
		{90, North},
		{180, West},
		{270, South},
		{339, SouthEast},
		{340, East},
		{359, East},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucket(tt.angle), "angle %v", tt.angle)
	}
}

func TestHeadingOfFlipsRows(t *testing.T) {
	from := models.Position{X: 5, Y: 5}

	up := []models.Position{{X: 5, Y: 4}, {X: 5, Y: 3}}
	assert.Equal(t, North, HeadingOf(from, up))

	downRight := []models.Position{{X: 6, Y: 6}, {X: 7, Y: 7}}
	assert.Equal(t, SouthEast, HeadingOf(from, downRight))
}

func TestHeadingOfUsesFirstSteps(t *testing.T) {
	from := models.Position{}
	var path []models.Position
	for x := 1; x <= 10; x++ {
		path = append(path, models.Position{X: x})
	}
	for y := 1; y <= 30; y++ {
		path = append(path, models.Position{X: 10, Y: -y})
	}
	assert.Equal(t, East, HeadingOf(from, path))
}

func TestBearingOrder(t *testing.T) {
	assert.Equal(t, 0.0, North.Bearing())
	assert.Equal(t, 90.0, East.Bearing())
	assert.Equal(t, 180.0, South.Bearing())
	assert.Equal(t, 270.0, West.Bearing())
	assert.Equal(t, 315.0, NorthWest.Bearing())
}

func TestTravelOptionsFromRoom(t *testing.T) {
	g, a, _, _ := threeRooms(t)
	h := g.d.graph.Hallway(g.d.hallways[0])

	options := g.d.TravelOptions(a.Center())

	require.Len(t, options, 1)
	opt := options[0]
	assert.Equal(t, models.Position{X: 13, Y: 5}, opt.Target, "hallways with junctions are entered at the junction")
	assert.Equal(t, h.ID(), opt.Node)
	assert.Equal(t, East, opt.Direction)
	assert.False(t, opt.Adjacent)
	assert.Contains(t, opt.Label, "east")
	assert.Equal(t, opt.Target, opt.Path[len(opt.Path)-1])
}

func TestTravelOptionsFromJunction(t *testing.T) {
	g, a, b, c := threeRooms(t)
	a.SetFlavour("Library", "")

	options := g.d.TravelOptions(models.Position{X: 13, Y: 5})

	require.Len(t, options, 3)
	assert.Equal(t, b.ID(), options[0].Node)
	assert.Equal(t, East, options[0].Direction)
	assert.Equal(t, c.ID(), options[1].Node)
	assert.Equal(t, South, options[1].Direction)
	assert.Equal(t, a.ID(), options[2].Node)
	assert.Equal(t, West, options[2].Direction)
	assert.Equal(t, "Head west to the Library", options[2].Label)
}

func TestTravelOptionsFromInsideRoom(t *testing.T) {
	g, _, _, c := threeRooms(t)

	// Just inside the door of C
	options := g.d.TravelOptions(models.Position{X: 13, Y: 14})

	require.Len(t, options, 1)
	assert.NotEqual(t, c.ID(), options[0].Node)
	assert.Equal(t, models.Position{X: 13, Y: 5}, options[0].Target)
	assert.Equal(t, North, options[0].Direction)
}

func TestTravelOptionsAdjacent(t *testing.T) {
	g, _, _, _ := threeRooms(t)
	h := g.d.graph.Hallway(g.d.hallways[0])

	// One step south of the junction
	options := g.d.TravelOptions(models.Position{X: 13, Y: 6})

	require.Len(t, options, 4)
	var adjacent []TravelOption
	for _, opt := range options {
		if opt.Adjacent {
			adjacent = append(adjacent, opt)
		}
	}
	require.Len(t, adjacent, 1)
	assert.Equal(t, models.Position{X: 13, Y: 5}, adjacent[0].Target)
	assert.Equal(t, h.ID(), adjacent[0].Node)
	assert.Equal(t, "Step into the hallway", adjacent[0].Label)
}

func TestTravelOptionsPanicsOffTheMap(t *testing.T) {
	g, _, _, _ := threeRooms(t)
	assert.Panics(t, func() {
		g.d.TravelOptions(models.Position{X: 0, Y: 0})
	})
}

func TestTravelOptionsNeverShareTargets(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		d, err := Generate(Params{Width: 40, Height: 40, Density: 0.75}, random.New(seed))
		require.NoError(t, err)

		var spots []models.Position
		for _, room := range d.Rooms() {
			spots = append(spots, room.Center())
		}
		for _, h := range d.Hallways() {
			spots = append(spots, h.Position())
			spots = append(spots, h.Intersections...)
		}
		for _, pos := range spots {
			options := d.TravelOptions(pos)
			targets := make(map[models.Position]bool)
			for _, opt := range options {
				assert.False(t, targets[opt.Target], "seed %d: duplicate target %v from %v", seed, opt.Target, pos)
				targets[opt.Target] = true
				assert.NotEqual(t, pos, opt.Target)
				require.NotEmpty(t, opt.Path)
				assert.Equal(t, opt.Target, opt.Path[len(opt.Path)-1])
			}
			for i := 1; i < len(options); i++ {
				assert.LessOrEqual(t, options[i-1].Direction.Bearing(), options[i].Direction.Bearing())
			}
		}
	}
}
